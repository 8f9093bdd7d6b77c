package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/campus-desk/caseinbox/pkg/domain/types"
	"github.com/campus-desk/caseinbox/pkg/repository/memory"
	"github.com/campus-desk/caseinbox/pkg/service/seed"
)

var seedNow = time.Date(2025, 1, 30, 14, 0, 0, 0, time.UTC)

func TestGeneratorIsDeterministic(t *testing.T) {
	a := seed.NewGenerator(42, seedNow).Cases(500)
	b := seed.NewGenerator(42, seedNow).Cases(500)

	gt.Value(t, len(a)).Equal(len(b))
	for i := range a {
		gt.Value(t, a[i].ID).Equal(b[i].ID)
		gt.Value(t, a[i].Subject).Equal(b[i].Subject)
		gt.Value(t, a[i].Department).Equal(b[i].Department)
		gt.Value(t, a[i].Priority).Equal(b[i].Priority)
		gt.Bool(t, a[i].CreatedAt.Equal(b[i].CreatedAt)).True()
	}

	// a different seed diverges
	c := seed.NewGenerator(7, seedNow).Cases(500)
	same := true
	for i := range a {
		if a[i].Subject != c[i].Subject || a[i].Department != c[i].Department {
			same = false
			break
		}
	}
	gt.Bool(t, same).False()
}

func TestGeneratorAppendsDuplicatePairs(t *testing.T) {
	cases := seed.NewGenerator(42, seedNow).Cases(seed.DefaultCaseCount)
	gt.Value(t, len(cases)).Equal(seed.DefaultCaseCount + 10)

	dups := 0
	for _, c := range cases {
		if c.HasTag("potential_duplicate") {
			dups++
			// a duplicate shares its original's requester and subject
			original := cases[(dups-1)*100]
			gt.Value(t, c.Subject).Equal(original.Subject)
			gt.Value(t, c.Requester).Equal(original.Requester)
			gt.Bool(t, c.CreatedAt.Equal(original.CreatedAt.Add(time.Hour))).True()
		}
	}
	gt.Number(t, dups).Equal(10)
}

func TestGeneratorDistributionRoughlyMatchesWeights(t *testing.T) {
	cases := seed.NewGenerator(42, seedNow).Cases(seed.DefaultCaseCount)

	byDept := map[types.Department]int{}
	completedWithStamp := true
	for _, c := range cases {
		byDept[c.Department]++
		if c.Status.IsCompleted() && c.CompletionTime() == nil {
			completedWithStamp = false
		}
	}

	// Finance carries the largest weight (0.30); IT the smallest (0.10)
	gt.Bool(t, byDept[types.DepartmentFinance] > byDept[types.DepartmentIT]).True()
	gt.Bool(t, byDept[types.DepartmentFinance] > 400).True()
	gt.Bool(t, completedWithStamp).True()
}

func TestLoadWritesFixtureThroughRepository(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	n, err := seed.Load(ctx, repo, 42, 200, seedNow)
	gt.NoError(t, err).Required()
	gt.Value(t, n).Equal(210) // 200 + 10 duplicates

	cases, err := repo.Case().List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, cases).Length(210)

	agents, err := repo.Agent().List(ctx, nil)
	gt.NoError(t, err).Required()
	gt.Array(t, agents).Length(5)

	// messages exist for seeded cases
	msgs, err := repo.CaseMessage().ListByCase(ctx, cases[0].ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, len(msgs) > 0).True()
	gt.Value(t, len(msgs)).Equal(cases[0].MessageCount)
}
