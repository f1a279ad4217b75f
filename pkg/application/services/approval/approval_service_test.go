package approval

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/events"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/repositories/memory"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/storage"
)

type fixture struct {
	svc       *Service
	store     *events.InMemoryEventStore
	documents *storage.MemoryStore
}

func newFixture() fixture {
	store := events.NewInMemoryEventStore()
	documents := storage.NewMemoryStore("http://files.local")
	svc := NewService(memory.NewContractRepository(), memory.NewChecklistRepository(), documents, store)
	return fixture{svc: svc, store: store, documents: documents}
}

func contractInput(supplier, number string) ContractInput {
	return ContractInput{
		SiteID:   "site-1",
		Supplier: supplier,
		Number:   number,
		Items: []entities.ContractItem{
			{Description: "Reboco", Unit: "m2", Quantity: decimal.NewFromInt(100), UnitPrice: decimal.RequireFromString("12.50")},
		},
		Approver: entities.Approver{ID: "u1", Name: "Ana", Email: "ana@example.com"},
	}
}

func TestCreateContract_SecondContractIsAmendment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.CreateContract(ctx, contractInput("Construtora Alfa", "C-001"))
	require.NoError(t, err)
	assert.Equal(t, entities.KindContract, first.Kind)
	assert.True(t, first.TotalValue.Equal(decimal.NewFromInt(1250)))
	assert.NotEmpty(t, first.Items[0].ID)

	second, err := f.svc.CreateContract(ctx, contractInput("  construtora alfa ", "C-002"))
	require.NoError(t, err)
	assert.Equal(t, entities.KindAmendment, second.Kind)
	assert.Equal(t, first.ID, second.OriginalContractID)

	third, err := f.svc.CreateContract(ctx, contractInput("Construtora Alfa", "C-003"))
	require.NoError(t, err)
	assert.Equal(t, second.ID, third.OriginalContractID)

	contracts, err := f.svc.ListContracts(ctx, "site-1")
	require.NoError(t, err)
	assert.Len(t, contracts, 3)

	f.store.Wait()
	published, err := f.store.ReadEvents("site-1", 1)
	require.NoError(t, err)
	assert.Len(t, published, 3)
}

func TestDecideContract(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	contract, err := f.svc.CreateContract(ctx, contractInput("Construtora Alfa", "C-001"))
	require.NoError(t, err)

	_, err = f.svc.DecideContract(ctx, contract.ID, "wrong", true, "")
	assert.True(t, errors.Is(err, entities.ErrInvalidApprovalToken))

	decided, err := f.svc.DecideContract(ctx, contract.ID, contract.Approval.Token, false, "valores acima do orçado")
	require.NoError(t, err)
	assert.Equal(t, entities.ApprovalRejected, decided.Approval.Status)

	_, err = f.svc.DecideContract(ctx, contract.ID, contract.Approval.Token, true, "")
	assert.True(t, errors.Is(err, entities.ErrAlreadyDecided))

	_, err = f.svc.DecideContract(ctx, "missing", "token", true, "")
	assert.True(t, errors.Is(err, entities.ErrNotFound))
}

func TestChecklistLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.CreateChecklist(ctx, ChecklistInput{SiteID: "site-1", Month: 13, Year: 2025})
	require.Error(t, err)

	checklist, err := f.svc.CreateChecklist(ctx, ChecklistInput{
		SiteID:       "site-1",
		Month:        3,
		Year:         2025,
		Approver:     entities.Approver{Name: "Bruno", Email: "bruno@example.com"},
		Document:     []byte("%PDF-1.4"),
		DocumentName: "marco.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "checklists/site-1/"+checklist.ID+".pdf", checklist.DocumentKey)

	content, err := f.documents.Get(ctx, checklist.DocumentKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), content)

	_, err = f.svc.ChecklistDocumentURL(ctx, "site-2", checklist.ID)
	assert.True(t, errors.Is(err, entities.ErrNotFound))
	assert.True(t, errors.Is(f.svc.DeleteChecklist(ctx, "site-2", checklist.ID), entities.ErrNotFound))

	url, err := f.svc.ChecklistDocumentURL(ctx, "site-1", checklist.ID)
	require.NoError(t, err)
	assert.Contains(t, url, checklist.DocumentKey)

	decided, err := f.svc.DecideChecklist(ctx, checklist.ID, checklist.Approval.Token, false, "pendências na fachada")
	require.NoError(t, err)
	assert.Equal(t, entities.ApprovalApprovedWithRestriction, decided.Approval.Status)

	require.NoError(t, f.svc.DeleteChecklist(ctx, "site-1", checklist.ID))
	_, err = f.documents.Get(ctx, checklist.DocumentKey)
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	listed, err := f.svc.ListChecklists(ctx, "site-1")
	require.NoError(t, err)
	assert.Empty(t, listed)

	f.store.Wait()
	published, err := f.store.ReadEvents("site-1", 1)
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, events.ChecklistSubmittedEvent, published[0].Type())
	assert.Equal(t, events.ChecklistDecidedEvent, published[1].Type())
}

func TestChecklistWithoutDocument(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	checklist, err := f.svc.CreateChecklist(ctx, ChecklistInput{
		SiteID:   "site-1",
		Month:    4,
		Year:     2025,
		Notes:    "sem anexo",
		Approver: entities.Approver{Name: "Bruno", Email: "bruno@example.com"},
	})
	require.NoError(t, err)
	assert.Empty(t, checklist.DocumentKey)
	assert.Empty(t, checklist.DocumentName)

	assert.Zero(t, f.documents.Len())

	_, err = f.svc.ChecklistDocumentURL(ctx, "site-1", checklist.ID)
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	decided, err := f.svc.DecideChecklist(ctx, checklist.ID, checklist.Approval.Token, true, "")
	require.NoError(t, err)
	assert.Equal(t, entities.ApprovalApproved, decided.Approval.Status)

	require.NoError(t, f.svc.DeleteChecklist(ctx, "site-1", checklist.ID))
}
