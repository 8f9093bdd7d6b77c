package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

type agentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.AgentRepository = &agentRepository{}

func newAgentRepository(client *firestore.Client) *agentRepository {
	return &agentRepository{client: client}
}

func (r *agentRepository) agentsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_agents"
	}
	return "agents"
}

func (r *agentRepository) Put(ctx context.Context, agent *model.Agent) error {
	if err := agent.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid agent")
	}

	ref := r.client.Collection(r.agentsCollection()).Doc(string(agent.ID))
	if _, err := ref.Set(ctx, agent); err != nil {
		return goerr.Wrap(err, "failed to save agent", goerr.V("id", agent.ID))
	}
	return nil
}

func (r *agentRepository) Get(ctx context.Context, id types.AgentID) (*model.Agent, error) {
	docSnap, err := r.client.Collection(r.agentsCollection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "agent not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get agent", goerr.V("id", id))
	}

	var agent model.Agent
	if err := docSnap.DataTo(&agent); err != nil {
		return nil, goerr.Wrap(err, "failed to decode agent", goerr.V("id", id))
	}

	return &agent, nil
}

func (r *agentRepository) List(ctx context.Context, dept *types.Department) ([]*model.Agent, error) {
	query := r.client.Collection(r.agentsCollection()).Query
	if dept != nil {
		query = query.Where("Department", "==", string(*dept))
	}

	iter := query.OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var out []*model.Agent
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate agents")
		}

		var agent model.Agent
		if err := docSnap.DataTo(&agent); err != nil {
			return nil, goerr.Wrap(err, "failed to decode agent", goerr.V("doc_id", docSnap.Ref.ID))
		}
		out = append(out, &agent)
	}

	return out, nil
}
