package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
	"github.com/campus-desk/caseinbox/pkg/repository/memory"
	"github.com/campus-desk/caseinbox/pkg/usecase"
)

var testEpoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// fakeClock is an adjustable engine clock for deadline and undo-window tests
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(at time.Time) *fakeClock {
	return &fakeClock{now: at}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestEngine(t *testing.T) (*usecase.UseCases, interfaces.Repository, *fakeClock) {
	t.Helper()
	repo := memory.New()
	clock := newFakeClock(testEpoch)
	uc := usecase.New(repo, usecase.WithClock(clock.Now))
	return uc, repo, clock
}

func seedCase(t *testing.T, repo interfaces.Repository, mutate func(c *model.Case)) *model.Case {
	t.Helper()

	c := &model.Case{
		Department: types.DepartmentIT,
		Subject:    "Cannot log in to portal",
		Requester: model.Requester{
			ID:    "req-0001",
			Name:  "Jordan Lee",
			Email: "jordan.lee@example.edu",
		},
		Priority:  types.PriorityNormal,
		Status:    types.StatusOpen,
		Channel:   types.ChannelEmail,
		CreatedAt: testEpoch,
		UpdatedAt: testEpoch,
	}
	if mutate != nil {
		mutate(c)
	}

	created, err := repo.Case().Create(context.Background(), c)
	gt.NoError(t, err).Required()
	return created
}

func seedMessages(t *testing.T, repo interfaces.Repository, caseID types.CaseID, n int, base time.Time) []*model.CaseMessage {
	t.Helper()

	msgs := make([]*model.CaseMessage, 0, n)
	for i := 0; i < n; i++ {
		msg := &model.CaseMessage{
			ID:        types.MessageID(fmt.Sprintf("%s-msg-%03d", caseID, i+1)),
			CaseID:    caseID,
			Author:    model.MessageAuthor{Name: "Jordan Lee", Role: model.AuthorRequester},
			Body:      fmt.Sprintf("message %d", i+1),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		gt.NoError(t, repo.CaseMessage().Put(context.Background(), msg)).Required()
		msgs = append(msgs, msg)
	}
	return msgs
}

func seedAgent(t *testing.T, repo interfaces.Repository, id types.AgentID, dept types.Department) *model.Agent {
	t.Helper()

	agent := &model.Agent{
		ID:         id,
		Name:       "Agent " + string(id),
		Email:      string(id) + "@campus.example.edu",
		Department: dept,
	}
	gt.NoError(t, repo.Agent().Put(context.Background(), agent)).Required()
	return agent
}

// waitForAudit polls for asynchronously written audit records
func waitForAudit(t *testing.T, repo interfaces.Repository, want int) []*model.AuditRecord {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		recs, err := repo.Audit().ListRecent(context.Background(), 0)
		gt.NoError(t, err).Required()
		if len(recs) >= want {
			return recs
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("audit records did not appear: want %d", want)
	return nil
}
