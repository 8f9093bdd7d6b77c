package seed

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// DefaultCaseCount is the demo fixture size before duplicate pairs
const DefaultCaseCount = 2000

// duplicatePairs is how many merge-demo duplicates the fixture appends
const duplicatePairs = 10

// lcg is the linear congruential generator the fixture is defined by. The
// same seed always yields the same fixture, across processes and platforms.
type lcg struct {
	state uint64
}

func newLCG(seed uint64) *lcg {
	return &lcg{state: seed}
}

func (l *lcg) next() float64 {
	l.state = (l.state*1664525 + 1013904223) % 4294967296
	return float64(l.state) / 4294967296
}

func (l *lcg) intn(n int) int {
	return int(math.Floor(l.next() * float64(n)))
}

var (
	departments = []types.Department{
		types.DepartmentAdmissions,
		types.DepartmentFinance,
		types.DepartmentRegistrar,
		types.DepartmentHousing,
		types.DepartmentIT,
	}
	deptWeights = []float64{0.25, 0.30, 0.20, 0.15, 0.10}

	priorities      = []types.Priority{types.PriorityLow, types.PriorityNormal, types.PriorityHigh, types.PriorityUrgent}
	priorityWeights = []float64{0.10, 0.60, 0.25, 0.05}

	statuses      = []types.Status{types.StatusNew, types.StatusOpen, types.StatusWaiting, types.StatusResolved, types.StatusClosed}
	statusWeights = []float64{0.05, 0.50, 0.15, 0.20, 0.10}

	channels = []types.Channel{types.ChannelChat, types.ChannelEmail, types.ChannelPhone, types.ChannelForm, types.ChannelWalkIn}

	firstNames = []string{"Ahmed", "Sara", "Mohammed", "Layla", "Omar", "Fatima", "Ali", "Nour", "Hassan", "Amira"}
	lastNames  = []string{"Ali", "Khalil", "Hassan", "Ibrahim", "Farid", "Mahmoud", "Salem", "Mansour"}

	caseTags = []string{
		"payment_plan", "financial_hardship", "documents_pending", "transcript",
		"verification", "password", "portal_access", "refund", "course_drop",
		"enrollment", "housing", "meal_plan",
	}

	courses   = []string{"BIO 201", "MATH 301", "ENG 102", "CS 150"}
	buildings = []string{"North Hall", "South Tower", "East Residence"}

	subjectTemplates = map[types.Department][]string{
		types.DepartmentAdmissions: {
			"Missing high school transcript",
			"Application status inquiry",
			"Transfer credit evaluation",
			"Documents pending review",
			"Admissions decision timeline",
		},
		types.DepartmentFinance: {
			"Payment plan request for ${amount} balance",
			"Refund request for dropped course {course}",
			"Scholarship disbursement question",
			"Tuition payment deadline extension",
			"Financial aid verification documents",
		},
		types.DepartmentRegistrar: {
			"Enrollment verification letter request",
			"Grade dispute for {course}",
			"Course registration error",
			"Transcript request for graduate application",
			"Add/drop period extension request",
		},
		types.DepartmentHousing: {
			"Room assignment change request",
			"Maintenance issue in dorm {building}",
			"Housing contract cancellation",
			"Roommate conflict resolution",
			"Move-out inspection appointment",
		},
		types.DepartmentIT: {
			"Cannot access student portal - password reset",
			"Email account not receiving messages",
			"WiFi connectivity issues in {building}",
			"Software license activation problem",
			"Two-factor authentication setup help",
		},
	}
)

// Agents is the demo roster. Exported so the serve command can announce the
// ids usable in X-Agent-ID.
var Agents = []*model.Agent{
	{ID: "agent-001", Name: "Sarah Johnson", Email: "sarah.j@university.edu", Department: types.DepartmentFinance},
	{ID: "agent-002", Name: "David Lee", Email: "david.l@university.edu", Department: types.DepartmentIT},
	{ID: "agent-003", Name: "Emily Chen", Email: "emily.c@university.edu", Department: types.DepartmentAdmissions},
	{ID: "agent-004", Name: "Michael Brown", Email: "michael.b@university.edu", Department: types.DepartmentRegistrar},
	{ID: "agent-005", Name: "Lisa Garcia", Email: "lisa.g@university.edu", Department: types.DepartmentHousing},
}

// Generator builds the deterministic demo fixture: a case load with the
// fixed department/priority/status mix plus ten duplicate pairs tagged
// potential_duplicate for the merge demo.
type Generator struct {
	rng *lcg
	now time.Time
}

// NewGenerator seeds a generator. The fixture is a pure function of the
// seed and reference time.
func NewGenerator(seed uint64, now time.Time) *Generator {
	return &Generator{rng: newLCG(seed), now: now.UTC()}
}

func (g *Generator) weightedDept() types.Department {
	return weightedChoice(g.rng, departments, deptWeights)
}

func weightedChoice[T any](rng *lcg, items []T, weights []float64) T {
	r := rng.next()
	sum := 0.0
	for i, w := range weights {
		sum += w
		if r < sum {
			return items[i]
		}
	}
	return items[len(items)-1]
}

func (g *Generator) requester(index int) model.Requester {
	first := firstNames[g.rng.intn(len(firstNames))]
	last := lastNames[g.rng.intn(len(lastNames))]
	return model.Requester{
		ID:    fmt.Sprintf("S%07d", 2024000+index),
		Name:  first + " " + last,
		Email: strings.ToLower(first) + "." + strings.ToLower(last) + "@student.edu",
	}
}

func (g *Generator) subject(dept types.Department) string {
	templates := subjectTemplates[dept]
	s := templates[g.rng.intn(len(templates))]
	s = strings.Replace(s, "{amount}", fmt.Sprintf("%d", g.rng.intn(5000)+500), 1)
	s = strings.Replace(s, "{course}", courses[g.rng.intn(len(courses))], 1)
	s = strings.Replace(s, "{building}", buildings[g.rng.intn(len(buildings))], 1)
	return s
}

// Cases generates count cases plus the duplicate pairs. Identities are
// assigned here (CASE-20250001 onward) so the fixture is stable regardless
// of the repository's own counter.
func (g *Generator) Cases(count int) []*model.Case {
	if count <= 0 {
		return nil
	}
	cases := make([]*model.Case, 0, count+duplicatePairs)

	for i := 0; i < count; i++ {
		dept := g.weightedDept()
		priority := weightedChoice(g.rng, priorities, priorityWeights)
		status := weightedChoice(g.rng, statuses, statusWeights)
		requester := g.requester(i)

		daysAgo := g.rng.intn(30)
		createdAt := g.now.Add(-time.Duration(daysAgo) * 24 * time.Hour)
		updatedAt := createdAt.Add(time.Duration(g.rng.next() * float64(g.now.Sub(createdAt))))

		c := &model.Case{
			ID:           types.CaseID(fmt.Sprintf("CASE-%08d", 20250001+i)),
			TicketNumber: types.TicketNumber(fmt.Sprintf("TKT-%08d", 20250001+i)),
			Department:   dept,
			Subject:      g.subject(dept),
			Requester:    requester,
			Priority:     priority,
			Status:       status,
			Channel:      channels[g.rng.intn(len(channels))],
			CreatedAt:    createdAt,
			UpdatedAt:    updatedAt,
			MessageCount: g.rng.intn(6) + 1,
		}

		if g.rng.next() < 0.70 {
			id := Agents[g.rng.intn(len(Agents))].ID
			c.Assignee = &id
		}

		for n := g.rng.intn(3); n > 0; n-- {
			tag := caseTags[g.rng.intn(len(caseTags))]
			if !c.HasTag(tag) {
				c.Tags = append(c.Tags, tag)
			}
		}

		if status.IsCompleted() {
			done := updatedAt
			if status == types.StatusResolved {
				c.ResolvedAt = &done
			} else {
				c.ClosedAt = &done
			}
		}

		cases = append(cases, c)
	}

	// Duplicate pairs: every 100th case gets a near-copy filed an hour
	// later, tagged for the merge demo.
	for i := 0; i < duplicatePairs; i++ {
		original := cases[(i*100)%count]
		dup := original.Clone()
		dup.ID = types.CaseID(fmt.Sprintf("CASE-DUP-%d", i))
		dup.TicketNumber = types.TicketNumber(fmt.Sprintf("TKT-DUP-%d", i))
		dup.CreatedAt = original.CreatedAt.Add(time.Hour)
		dup.UpdatedAt = original.UpdatedAt
		dup.Tags = append(dup.Tags, "potential_duplicate")
		cases = append(cases, dup)
	}

	return cases
}

// Messages generates a case's conversation: alternating requester and agent
// messages ending at the case's UpdatedAt.
func (g *Generator) Messages(c *model.Case) []*model.CaseMessage {
	msgs := make([]*model.CaseMessage, 0, c.MessageCount)
	span := c.UpdatedAt.Sub(c.CreatedAt)
	if span <= 0 {
		span = time.Minute
	}

	for i := 0; i < c.MessageCount; i++ {
		author := model.MessageAuthor{Name: c.Requester.Name, Role: model.AuthorRequester}
		if i%2 == 1 && c.Assignee != nil {
			author = model.MessageAuthor{Name: string(*c.Assignee), Role: model.AuthorAgent}
		}

		msgs = append(msgs, &model.CaseMessage{
			ID:        types.MessageID(fmt.Sprintf("%s-msg-%03d", c.ID, i+1)),
			CaseID:    c.ID,
			Author:    author,
			Body:      fmt.Sprintf("Follow-up %d on %q", i+1, c.Subject),
			CreatedAt: c.CreatedAt.Add(time.Duration(i+1) * span / time.Duration(c.MessageCount+1)),
		})
	}

	if len(msgs) > 0 {
		c.LastMessagePreview = msgs[len(msgs)-1].Body
	}
	return msgs
}

// Load writes the full fixture (agents, cases, messages) through the
// repository.
func Load(ctx context.Context, repo interfaces.Repository, seedValue uint64, count int, now time.Time) (int, error) {
	g := NewGenerator(seedValue, now)

	for _, agent := range Agents {
		if err := repo.Agent().Put(ctx, agent); err != nil {
			return 0, goerr.Wrap(err, "failed to store agent", goerr.V("agent_id", agent.ID))
		}
	}

	cases := g.Cases(count)
	for _, c := range cases {
		msgs := g.Messages(c)

		if _, err := repo.Case().Create(ctx, c); err != nil {
			return 0, goerr.Wrap(err, "failed to store case", goerr.V("case_id", c.ID))
		}
		for _, msg := range msgs {
			if err := repo.CaseMessage().Put(ctx, msg); err != nil {
				return 0, goerr.Wrap(err, "failed to store message", goerr.V("message_id", msg.ID))
			}
		}
	}

	return len(cases), nil
}
