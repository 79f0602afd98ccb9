package venue

import (
	"context"
	"errors"
	"testing"
)

func TestPaperConnectorOpenClose(t *testing.T) {
	ctx := context.Background()
	c := NewPaperConnector(10000)

	fill, err := c.OpenPosition(ctx, "VIX75", 100, 1000)
	if err != nil {
		t.Fatalf("OpenPosition: %v", err)
	}
	if fill.Price != 100 || fill.Size != 1000 {
		t.Errorf("fill = %+v, want price 100 size 1000", fill)
	}

	acct, err := c.GetAccount(ctx)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if acct.Cash != 9000 {
		t.Errorf("cash = %v, want 9000 after committing 1000", acct.Cash)
	}
	if _, open := acct.Positions["VIX75"]; !open {
		t.Error("position not recorded")
	}

	// Close 5% up: pnl = 1000 * 5/100 = 50.
	exit, err := c.ClosePosition(ctx, "VIX75", 105)
	if err != nil {
		t.Fatalf("ClosePosition: %v", err)
	}
	if exit.PnL != 50 {
		t.Errorf("PnL = %v, want 50", exit.PnL)
	}

	acct, _ = c.GetAccount(ctx)
	if acct.Cash != 10050 {
		t.Errorf("cash = %v, want 10050 after realizing +50", acct.Cash)
	}
	if len(acct.Positions) != 0 {
		t.Errorf("positions = %v, want empty", acct.Positions)
	}
}

func TestPaperConnectorRejections(t *testing.T) {
	ctx := context.Background()
	c := NewPaperConnector(1000)

	// Oversized order.
	if _, err := c.OpenPosition(ctx, "VIX75", 100, 5000); !errors.Is(err, ErrVenueRejected) {
		t.Errorf("oversized open: got %v, want ErrVenueRejected", err)
	}
	// Zero size.
	if _, err := c.OpenPosition(ctx, "VIX75", 100, 0); !errors.Is(err, ErrVenueRejected) {
		t.Errorf("zero-size open: got %v, want ErrVenueRejected", err)
	}
	// Close with nothing open.
	if _, err := c.ClosePosition(ctx, "VIX75", 100); !errors.Is(err, ErrVenueRejected) {
		t.Errorf("close without position: got %v, want ErrVenueRejected", err)
	}

	// Double open on the same symbol.
	if _, err := c.OpenPosition(ctx, "VIX75", 100, 500); err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := c.OpenPosition(ctx, "VIX75", 100, 100); !errors.Is(err, ErrVenueRejected) {
		t.Errorf("double open: got %v, want ErrVenueRejected", err)
	}
}

func TestPaperConnectorLoss(t *testing.T) {
	ctx := context.Background()
	c := NewPaperConnector(10000)

	if _, err := c.OpenPosition(ctx, "BOOM500", 200, 2000); err != nil {
		t.Fatalf("OpenPosition: %v", err)
	}
	// Close 3% down: pnl = 2000 * -3/100 = -60.
	exit, err := c.ClosePosition(ctx, "BOOM500", 194)
	if err != nil {
		t.Fatalf("ClosePosition: %v", err)
	}
	if exit.PnL != -60 {
		t.Errorf("PnL = %v, want -60", exit.PnL)
	}
	acct, _ := c.GetAccount(ctx)
	if acct.Cash != 9940 {
		t.Errorf("cash = %v, want 9940", acct.Cash)
	}
}
