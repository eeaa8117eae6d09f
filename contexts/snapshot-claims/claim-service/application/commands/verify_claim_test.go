package commands

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"claimerapi/contexts/snapshot-claims/claim-service/adapters/memory"
	"claimerapi/contexts/snapshot-claims/claim-service/domain/entities"
	domainerrors "claimerapi/contexts/snapshot-claims/claim-service/domain/errors"
	"claimerapi/contexts/snapshot-claims/claim-service/ports"
	"claimerapi/internal/shared/events"
)

const testSnapshotHeight = int64(1_234_567)

type stubChain struct {
	mu    sync.Mutex
	calls []string

	tip        ports.TipStatus
	tipErr     error
	balances   map[string]*big.Int
	balanceErr error
	verified   bool
	verifyErr  error
	invalid    map[string]bool
}

func (c *stubChain) record(call string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
}

func (c *stubChain) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func (c *stubChain) GetTipHeight(context.Context) (ports.TipStatus, error) {
	c.record("tip")
	if c.tipErr != nil {
		return ports.TipStatus{}, c.tipErr
	}
	return c.tip, nil
}

func (c *stubChain) GetBalance(_ context.Context, address string, _ int) (*big.Int, error) {
	c.record("balance")
	if c.balanceErr != nil {
		return nil, c.balanceErr
	}
	if balance, ok := c.balances[address]; ok {
		return balance, nil
	}
	return new(big.Int), nil
}

func (c *stubChain) VerifySignature(context.Context, string, string, string) (bool, error) {
	c.record("verify")
	if c.verifyErr != nil {
		return false, c.verifyErr
	}
	return c.verified, nil
}

func (c *stubChain) ValidateAddress(_ context.Context, address string) (ports.AddressStatus, error) {
	c.record("validate")
	return ports.AddressStatus{IsValid: !c.invalid[address]}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Envelope
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event events.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Events() []events.Envelope {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Envelope(nil), p.events...)
}

func healthyChain() *stubChain {
	return &stubChain{
		tip:      ports.TipStatus{Hash: "00abc", Height: testSnapshotHeight},
		balances: map[string]*big.Int{"src-1": big.NewInt(500_000_000)},
		verified: true,
	}
}

func validCommand() VerifyClaimCommand {
	return VerifyClaimCommand{
		SourceAddress:      "src-1",
		DestinationAddress: "dest-1",
		ClaimedBalance:     big.NewInt(500_000_000),
		Signature:          "sig-1",
		RawPayload:         `{"sourceAddress":"src-1","destinationAddress":"dest-1","claimedBalance":500000000}`,
	}
}

func useCase(store *memory.Store, chain ports.ChainClient, publisher ports.EventPublisher) VerifyClaimUseCase {
	return VerifyClaimUseCase{
		Claims:         store,
		Chain:          chain,
		Clock:          store,
		Publisher:      publisher,
		SnapshotHeight: testSnapshotHeight,
		Deadline:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ScaleDigits:    8,
		ServiceName:    "claimer-api-test",
	}
}

func TestVerifyClaimSucceedsAndPublishes(t *testing.T) {
	store := memory.NewStore(nil)
	chain := healthyChain()
	publisher := &recordingPublisher{}
	uc := useCase(store, chain, publisher)

	claim, err := uc.Execute(context.Background(), validCommand())
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if claim.ID == "" {
		t.Fatal("expected claim to receive an id")
	}

	if _, found, _ := store.FindBySourceAddress(context.Background(), "src-1"); !found {
		t.Fatal("claim was not persisted")
	}

	published := publisher.Events()
	if len(published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(published))
	}
	if published[0].EventType != EventTypeClaimVerified {
		t.Fatalf("event type = %s, want %s", published[0].EventType, EventTypeClaimVerified)
	}
	payload, ok := published[0].Payload.(ports.ClaimVerifiedNotification)
	if !ok {
		t.Fatalf("unexpected payload type %T", published[0].Payload)
	}
	if payload.ClaimedBalanceCoins != "5.00000000" {
		t.Fatalf("coins = %s, want 5.00000000", payload.ClaimedBalanceCoins)
	}
}

func TestVerifyClaimRequiresSignature(t *testing.T) {
	store := memory.NewStore(nil)
	chain := healthyChain()
	uc := useCase(store, chain, nil)

	cmd := validCommand()
	cmd.Signature = ""
	_, err := uc.Execute(context.Background(), cmd)
	if !errors.Is(err, domainerrors.ErrSignatureRequired) {
		t.Fatalf("expected ErrSignatureRequired, got %v", err)
	}
	if len(chain.Calls()) != 0 {
		t.Fatalf("chain must not be consulted before the signature gate, calls: %v", chain.Calls())
	}
}

func TestVerifyClaimMissingSignatureWinsOverMissingFields(t *testing.T) {
	store := memory.NewStore(nil)
	chain := healthyChain()
	uc := useCase(store, chain, nil)

	// An unsigned submission is rejected as unsigned even when the address
	// fields are empty as well.
	_, err := uc.Execute(context.Background(), VerifyClaimCommand{})
	if !errors.Is(err, domainerrors.ErrSignatureRequired) {
		t.Fatalf("expected ErrSignatureRequired, got %v", err)
	}
	if len(chain.Calls()) != 0 {
		t.Fatalf("chain must not be consulted, calls: %v", chain.Calls())
	}
}

func TestVerifyClaimRejectsWrongBlockHeight(t *testing.T) {
	store := memory.NewStore(nil)
	chain := healthyChain()
	chain.tip.Height = testSnapshotHeight + 10
	uc := useCase(store, chain, nil)

	_, err := uc.Execute(context.Background(), validCommand())
	if !errors.Is(err, domainerrors.ErrWrongBlockHeight) {
		t.Fatalf("expected ErrWrongBlockHeight, got %v", err)
	}
	if calls := chain.Calls(); len(calls) != 1 || calls[0] != "tip" {
		t.Fatalf("later gates must not run after the height gate, calls: %v", calls)
	}
}

func TestVerifyClaimTreatsChainOutageAsFault(t *testing.T) {
	store := memory.NewStore(nil)
	chain := healthyChain()
	chain.tipErr = domainerrors.ErrChainUnavailable
	uc := useCase(store, chain, nil)

	_, err := uc.Execute(context.Background(), validCommand())
	if err == nil {
		t.Fatal("expected an error")
	}
	if domainerrors.IsRejection(err) {
		t.Fatalf("chain outage must be a fault, not a rejection: %v", err)
	}
	if !errors.Is(err, domainerrors.ErrChainUnavailable) {
		t.Fatalf("fault must carry the unavailability cause, got %v", err)
	}
}

func TestVerifyClaimRejectsAfterDeadline(t *testing.T) {
	store := memory.NewStore(nil)
	store.AdvanceTo(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	uc := useCase(store, healthyChain(), nil)

	_, err := uc.Execute(context.Background(), validCommand())
	if !errors.Is(err, domainerrors.ErrClaimPeriodEnded) {
		t.Fatalf("expected ErrClaimPeriodEnded, got %v", err)
	}
}

func TestVerifyClaimRejectsInvalidSourceAddress(t *testing.T) {
	store := memory.NewStore(nil)
	chain := healthyChain()
	chain.invalid = map[string]bool{"src-1": true}
	uc := useCase(store, chain, nil)

	_, err := uc.Execute(context.Background(), validCommand())
	if !errors.Is(err, domainerrors.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
}

func TestVerifyClaimRejectsDuplicateSourceAddress(t *testing.T) {
	existing := entities.Claim{
		ID:                 "existing",
		SourceAddress:      "src-1",
		DestinationAddress: "dest-0",
		ClaimedBalance:     big.NewInt(1),
	}
	store := memory.NewStore([]entities.Claim{existing})
	uc := useCase(store, healthyChain(), nil)

	_, err := uc.Execute(context.Background(), validCommand())
	if !errors.Is(err, domainerrors.ErrDuplicateAddress) {
		t.Fatalf("expected ErrDuplicateAddress, got %v", err)
	}
}

func TestVerifyClaimRejectsBalanceMismatch(t *testing.T) {
	store := memory.NewStore(nil)
	chain := healthyChain()
	chain.balances["src-1"] = big.NewInt(499_999_999)
	uc := useCase(store, chain, nil)

	_, err := uc.Execute(context.Background(), validCommand())
	if !errors.Is(err, domainerrors.ErrBalanceMismatch) {
		t.Fatalf("expected ErrBalanceMismatch, got %v", err)
	}
}

func TestVerifyClaimRejectsBadSignature(t *testing.T) {
	store := memory.NewStore(nil)
	chain := healthyChain()
	chain.verified = false
	uc := useCase(store, chain, nil)

	_, err := uc.Execute(context.Background(), validCommand())
	if !errors.Is(err, domainerrors.ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
	if count, _ := store.Count(context.Background()); count != 0 {
		t.Fatalf("nothing may be persisted on rejection, count = %d", count)
	}
}

func TestVerifyClaimDuplicateUnderConcurrency(t *testing.T) {
	store := memory.NewStore(nil)
	chain := healthyChain()
	publisher := &recordingPublisher{}
	uc := useCase(store, chain, publisher)

	const submissions = 8
	results := make(chan error, submissions)
	var wg sync.WaitGroup
	for i := 0; i < submissions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validCommand())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, duplicates int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domainerrors.ErrDuplicateAddress):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("exactly one submission may win, got %d", successes)
	}
	if duplicates != submissions-1 {
		t.Fatalf("expected %d duplicate rejections, got %d", submissions-1, duplicates)
	}
	if count, _ := store.Count(context.Background()); count != 1 {
		t.Fatalf("store must hold exactly one claim, count = %d", count)
	}
}
