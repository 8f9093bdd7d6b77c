package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
)

// Firestore is the persistent repository backend
type Firestore struct {
	client   *firestore.Client
	cases    *caseRepository
	messages *messageRepository
	agents   *agentRepository
	views    *savedViewRepository
	undo     *undoRepository
	audit    *auditRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces every collection, letting multiple
// deployments share one database.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.cases.collectionPrefix = prefix
		f.messages.collectionPrefix = prefix
		f.agents.collectionPrefix = prefix
		f.views.collectionPrefix = prefix
		f.undo.collectionPrefix = prefix
		f.audit.collectionPrefix = prefix
	}
}

// New connects to Firestore. databaseID may be empty for the default
// database.
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:   client,
		cases:    newCaseRepository(client),
		messages: newMessageRepository(client),
		agents:   newAgentRepository(client),
		views:    newSavedViewRepository(client),
		undo:     newUndoRepository(client),
		audit:    newAuditRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Case() interfaces.CaseRepository {
	return f.cases
}

func (f *Firestore) CaseMessage() interfaces.CaseMessageRepository {
	return f.messages
}

func (f *Firestore) Agent() interfaces.AgentRepository {
	return f.agents
}

func (f *Firestore) SavedView() interfaces.SavedViewRepository {
	return f.views
}

func (f *Firestore) Undo() interfaces.UndoRepository {
	return f.undo
}

func (f *Firestore) Audit() interfaces.AuditRepository {
	return f.audit
}

// Close releases the underlying client
func (f *Firestore) Close() error {
	if err := f.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close firestore client")
	}
	return nil
}
