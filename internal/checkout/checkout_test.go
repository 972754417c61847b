package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stripe/stripe-go/v82"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/validate"
)

type mockSessions struct {
	NewFunc func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	calls   []*stripe.CheckoutSessionParams
}

func (m *mockSessions) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	m.calls = append(m.calls, params)
	if m.NewFunc != nil {
		return m.NewFunc(params)
	}
	return &stripe.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.com/c/pay/cs_test_123"}, nil
}

type mockPayments struct {
	InsertPendingFunc func(ctx context.Context, p *model.Payment) error
	UpsertFunc        func(ctx context.Context, p *model.Payment) error
	pending           []*model.Payment
	upserts           []*model.Payment
}

func (m *mockPayments) InsertPending(ctx context.Context, p *model.Payment) error {
	if m.InsertPendingFunc != nil {
		if err := m.InsertPendingFunc(ctx, p); err != nil {
			return err
		}
	}
	p.Status = model.PaymentPending
	m.pending = append(m.pending, p)
	return nil
}

func (m *mockPayments) Upsert(ctx context.Context, p *model.Payment) error {
	m.upserts = append(m.upserts, p)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, p)
	}
	return nil
}

func validRequest() Request {
	return Request{
		FormSubmissionID: "sub-1",
		ServiceType:      "nexus_letter",
		Amount:           150000,
		CustomerEmail:    "vet@example.com",
		SuccessURL:       "https://www.example.com/ok",
		CancelURL:        "https://www.example.com/cancel",
	}
}

func TestCreateMissingEmail(t *testing.T) {
	sessions := &mockSessions{}
	svc := NewService(sessions, &mockPayments{}, "usd", "https://www.example.com")
	req := validRequest()
	req.CustomerEmail = ""
	_, err := svc.Create(context.Background(), req)
	if !validate.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(sessions.calls) != 0 {
		t.Fatal("session created for invalid request")
	}
}

func TestCreateRecordsOnePendingPayment(t *testing.T) {
	payments := &mockPayments{}
	svc := NewService(&mockSessions{}, payments, "usd", "https://www.example.com")

	res, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.SessionID != "cs_test_123" || res.URL == "" {
		t.Fatalf("result = %+v", res)
	}
	if len(payments.pending) != 1 {
		t.Fatalf("pending rows = %d", len(payments.pending))
	}
	p := payments.pending[0]
	if p.StripeCheckoutSessionID != "cs_test_123" || p.Status != model.PaymentPending || p.Amount != 150000 {
		t.Fatalf("payment = %+v", p)
	}
}

func TestCreateSucceedsWhenInsertFails(t *testing.T) {
	payments := &mockPayments{InsertPendingFunc: func(context.Context, *model.Payment) error {
		return errors.New("db down")
	}}
	svc := NewService(&mockSessions{}, payments, "usd", "")
	res, err := svc.Create(context.Background(), validRequest())
	if err != nil || res.SessionID == "" {
		t.Fatalf("Create = %+v, %v", res, err)
	}
}

func TestCreateSessionFailure(t *testing.T) {
	payments := &mockPayments{}
	svc := NewService(&mockSessions{NewFunc: func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		return nil, errors.New("card_declined")
	}}, payments, "usd", "")
	if _, err := svc.Create(context.Background(), validRequest()); err == nil || validate.IsValidation(err) {
		t.Fatalf("err = %v", err)
	}
	if len(payments.pending) != 0 {
		t.Fatal("payment recorded without a session")
	}
}

func TestRushOnlyChangesTurnaround(t *testing.T) {
	svc := NewService(&mockSessions{}, &mockPayments{}, "usd", "")
	standard := validRequest()
	rush := validRequest()
	rush.IsRushService = true

	sp := svc.Params(standard).LineItems[0].PriceData
	rp := svc.Params(rush).LineItems[0].PriceData

	if *sp.UnitAmount != 150000 || *rp.UnitAmount != 150000 {
		t.Fatalf("amounts = %d, %d; want pass-through", *sp.UnitAmount, *rp.UnitAmount)
	}
	sd, rd := *sp.ProductData.Description, *rp.ProductData.Description
	if sd != "Nexus Letter - "+StandardTurnaround || rd != "Nexus Letter - "+RushTurnaround {
		t.Fatalf("descriptions = %q, %q", sd, rd)
	}
	if strings.TrimSuffix(sd, StandardTurnaround) != strings.TrimSuffix(rd, RushTurnaround) {
		t.Fatal("descriptions differ beyond the turnaround phrase")
	}
}

func TestParamsMetadataAndDefaults(t *testing.T) {
	svc := NewService(&mockSessions{}, &mockPayments{}, "", "https://www.example.com")
	req := validRequest()
	req.ServiceType = "custom_letter"
	req.IsRushService = true
	req.SuccessURL, req.CancelURL = "", ""

	params := svc.Params(req)
	if params.Metadata[MetaFormSubmissionID] != "sub-1" ||
		params.Metadata[MetaServiceType] != "custom_letter" ||
		params.Metadata[MetaIsRushService] != "true" {
		t.Fatalf("metadata = %v", params.Metadata)
	}
	if *params.LineItems[0].PriceData.ProductData.Name != "custom_letter" {
		t.Errorf("name fallback = %q", *params.LineItems[0].PriceData.ProductData.Name)
	}
	if *params.LineItems[0].PriceData.Currency != "usd" {
		t.Errorf("currency = %q", *params.LineItems[0].PriceData.Currency)
	}
	if !strings.HasPrefix(*params.SuccessURL, "https://www.example.com/payment/success") {
		t.Errorf("success url = %q", *params.SuccessURL)
	}
	if *params.CustomerEmail != "vet@example.com" || *params.Mode != "payment" {
		t.Errorf("params = %+v", params)
	}
}
