package worker_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"

	"github.com/rcarvalho-pb/fiadopay-go/internal/application/worker"
	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/event"
	"github.com/rcarvalho-pb/fiadopay-go/internal/domain/payment"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infra/metrics"
	"github.com/rcarvalho-pb/fiadopay-go/internal/infrastructure/persistence/inmemory"
)

type fakeRecorder struct {
	recordFn func(event.Event) error
}

func (f *fakeRecorder) Record(evt event.Event) error {
	return f.recordFn(evt)
}

func pendingPayment(id string) *payment.Payment {
	now := time.Now().UTC()
	return &payment.Payment{
		ID:         id,
		MerchantID: "mer_1",
		Method:     payment.MethodPix,
		Amount:     decimal.RequireFromString("42.00"),
		Currency:   "BRL",
		Status:     payment.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func newProcessor(repo payment.Repository, recorder *fakeRecorder, failureRate float64) *worker.SettlementProcessor {
	return &worker.SettlementProcessor{
		Payments:    repo,
		Recorder:    recorder,
		Clock:       clockz.RealClock,
		Delay:       0,
		FailureRate: failureRate,
		Logger:      &noopLogger{},
		Metrics:     &metrics.Counters{},
	}
}

func TestSettlement_ZeroFailureRateAlwaysApproves(t *testing.T) {
	repo := inmemory.NewPaymentRepository()
	recorded := []event.Event{}
	recorder := &fakeRecorder{recordFn: func(evt event.Event) error {
		recorded = append(recorded, evt)
		return nil
	}}

	processor := newProcessor(repo, recorder, 0.0)

	for i := 0; i < 10; i++ {
		p := pendingPayment("pay_approve")
		require.NoError(t, repo.Save(p))

		settled, err := processor.Process(p.ID)
		require.NoError(t, err)
		require.Equal(t, payment.StatusApproved, settled.Status)
	}

	require.Len(t, recorded, 10)
}

func TestSettlement_FullFailureRateAlwaysDeclines(t *testing.T) {
	repo := inmemory.NewPaymentRepository()
	recorder := &fakeRecorder{recordFn: func(event.Event) error { return nil }}
	processor := newProcessor(repo, recorder, 1.0)

	for i := 0; i < 10; i++ {
		p := pendingPayment("pay_decline")
		require.NoError(t, repo.Save(p))

		settled, err := processor.Process(p.ID)
		require.NoError(t, err)
		require.Equal(t, payment.StatusDeclined, settled.Status)
	}
}

func TestSettlement_PersistsOutcomeAndRecordsEvent(t *testing.T) {
	repo := inmemory.NewPaymentRepository()

	var recorded []event.Event
	recorder := &fakeRecorder{recordFn: func(evt event.Event) error {
		recorded = append(recorded, evt)
		return nil
	}}

	processor := newProcessor(repo, recorder, 0.0)

	p := pendingPayment("pay_1")
	require.NoError(t, repo.Save(p))

	settled, err := processor.Process("pay_1")
	require.NoError(t, err)

	stored, err := repo.FindByID("pay_1")
	require.NoError(t, err)
	require.Equal(t, payment.StatusApproved, stored.Status)
	require.True(t, stored.UpdatedAt.After(p.UpdatedAt) || stored.UpdatedAt.Equal(settled.UpdatedAt))

	require.Len(t, recorded, 1)
	require.Equal(t, event.PaymentSettled, recorded[0].Type)

	payload, ok := recorded[0].Payload.(event.PaymentSettledPayload)
	require.True(t, ok, "expected typed settled payload")
	require.Equal(t, "pay_1", payload.PaymentID)
	require.Equal(t, string(payment.StatusApproved), payload.Status)

	if processor.Metrics.SettlementsApproved != 1 {
		t.Errorf("expected SettlementsApproved = 1, got %d", processor.Metrics.SettlementsApproved)
	}
}

func TestSettlement_MissingPaymentIsSkippedSilently(t *testing.T) {
	repo := inmemory.NewPaymentRepository()

	recorderCalled := false
	recorder := &fakeRecorder{recordFn: func(event.Event) error {
		recorderCalled = true
		return nil
	}}

	processor := newProcessor(repo, recorder, 0.0)

	settled, err := processor.Process("pay_ghost")
	require.NoError(t, err)
	require.Nil(t, settled)

	if recorderCalled {
		t.Error("expected no event recorded for a missing payment")
	}
}

func TestSettlement_InjectedRandDrivesOutcome(t *testing.T) {
	repo := inmemory.NewPaymentRepository()
	recorder := &fakeRecorder{recordFn: func(event.Event) error { return nil }}

	processor := newProcessor(repo, recorder, 0.5)
	processor.Rand = func() float64 { return 0.4 }

	p := pendingPayment("pay_rand")
	require.NoError(t, repo.Save(p))

	settled, err := processor.Process(p.ID)
	require.NoError(t, err)
	require.Equal(t, payment.StatusDeclined, settled.Status)
}
