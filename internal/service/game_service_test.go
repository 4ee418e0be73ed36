package service

import (
	"errors"
	"testing"

	"github.com/benbeisheim/chess-backend/internal/model"
)

// firstMove plays the first legal move it is offered.
type firstMove struct{}

func (firstMove) ChooseMove(_ *model.GameState, legal []model.Move) (model.Move, bool) {
	if len(legal) == 0 {
		return model.Move{}, false
	}
	return legal[0], true
}

func newService(computer model.Color) *GameService {
	return NewGameService(NewGameManager(), firstMove{}, Defaults{Computer: computer})
}

func strPtr(s string) *string { return &s }

func selection(t *testing.T, from, to string) model.SimpleMove {
	t.Helper()
	f, err := model.ParseSquare(from)
	if err != nil {
		t.Fatal(err)
	}
	d, err := model.ParseSquare(to)
	if err != nil {
		t.Fatal(err)
	}
	return model.SimpleMove{From: f, To: d}
}

func TestCreateGame(t *testing.T) {
	svc := newService(model.Black)

	state, err := svc.CreateGame(CreateRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if state.FEN != model.FENStartPos || len(state.MoveHistory) != 0 {
		t.Fatalf("expected a fresh game, got %s %v", state.FEN, state.MoveHistory)
	}
	if state.Players.Black.Name != model.PlayerComputer {
		t.Errorf("expected the default computer side, got %+v", state.Players)
	}

	state, err = svc.CreateGame(CreateRequest{Computer: strPtr("white")})
	if err != nil {
		t.Fatal(err)
	}
	if len(state.MoveHistory) != 1 || state.ToMove != model.Black {
		t.Fatalf("computer playing white should open, got %v", state.MoveHistory)
	}

	state, err = svc.CreateGame(CreateRequest{Computer: strPtr(""), FEN: "4k3/8/8/8/8/8/8/4K2R w K - 0 1"})
	if err != nil {
		t.Fatal(err)
	}
	if state.Players.White.Name != model.PlayerHuman || state.Players.Black.Name != model.PlayerHuman {
		t.Errorf("expected two humans, got %+v", state.Players)
	}
	if !state.CastleRights.WhiteKingSide || state.CastleRights.WhiteQueenSide {
		t.Errorf("unexpected castle rights %+v", state.CastleRights)
	}
}

func TestCreateGameErrors(t *testing.T) {
	svc := newService("")
	if _, err := svc.CreateGame(CreateRequest{FEN: "not a fen"}); !errors.Is(err, model.ErrInvalidFEN) {
		t.Errorf("expected ErrInvalidFEN, got %v", err)
	}
	if _, err := svc.CreateGame(CreateRequest{Computer: strPtr("purple")}); !errors.Is(err, ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	svc := newService(model.Black)
	state, err := svc.CreateGame(CreateRequest{})
	if err != nil {
		t.Fatal(err)
	}

	res, err := svc.Select(state.ID, selection(t, "e2", "e5"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted || len(res.State.MoveHistory) != 0 {
		t.Fatalf("expected rejection with no change, got %+v", res)
	}

	res, err = svc.Select(state.ID, selection(t, "e2", "e4"))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted {
		t.Fatal("expected e2e4 to be accepted")
	}
	if len(res.State.MoveHistory) != 2 || res.State.ToMove != model.White {
		t.Fatalf("expected the computer to have replied, got %v", res.State.MoveHistory)
	}

	if _, err := svc.Select("missing", selection(t, "e2", "e4")); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestUndoSkipsComputerPly(t *testing.T) {
	svc := newService(model.Black)
	state, _ := svc.CreateGame(CreateRequest{})
	if _, err := svc.Select(state.ID, selection(t, "e2", "e4")); err != nil {
		t.Fatal(err)
	}

	after, err := svc.Undo(state.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.FEN != model.FENStartPos {
		t.Fatalf("expected both plies taken back, got %s", after.FEN)
	}

	after, err = svc.Undo(state.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.FEN != model.FENStartPos {
		t.Fatalf("undo with no history should change nothing, got %s", after.FEN)
	}
}

func TestUndoComputerOpening(t *testing.T) {
	svc := newService(model.White)
	state, _ := svc.CreateGame(CreateRequest{})
	if len(state.MoveHistory) != 1 {
		t.Fatalf("expected the computer to open, got %v", state.MoveHistory)
	}

	after, err := svc.Undo(state.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(after.MoveHistory) != 1 || after.ToMove != model.Black {
		t.Fatalf("computer should replay its opening move, got %v", after.MoveHistory)
	}
}

func TestComputerMove(t *testing.T) {
	svc := newService("")
	state, _ := svc.CreateGame(CreateRequest{})

	after, err := svc.ComputerMove(state.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(after.MoveHistory) != 1 || after.ToMove != model.Black {
		t.Fatalf("expected one engine move, got %v", after.MoveHistory)
	}

	mated, err := svc.CreateGame(CreateRequest{FEN: "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"})
	if err != nil {
		t.Fatal(err)
	}
	if mated.Resolve == nil || *mated.Resolve != model.ResolveCheckmate {
		t.Fatalf("expected a finished game, got %v", mated.Resolve)
	}
	if _, err := svc.ComputerMove(mated.ID); !errors.Is(err, model.ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestRemoveGame(t *testing.T) {
	gm := NewGameManager()
	svc := NewGameService(gm, firstMove{}, Defaults{})
	state, _ := svc.CreateGame(CreateRequest{})
	if gm.Count() != 1 {
		t.Fatalf("expected one game, got %d", gm.Count())
	}
	if err := svc.RemoveGame(state.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetGameState(state.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if err := svc.RemoveGame(state.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound on second removal, got %v", err)
	}
}

func TestSendToUnknownConnection(t *testing.T) {
	svc := newService("")
	state, _ := svc.CreateGame(CreateRequest{})
	if err := svc.SendTo(state.ID, "nobody", "error", nil); !errors.Is(err, model.ErrUnknownConnection) {
		t.Fatalf("expected ErrUnknownConnection, got %v", err)
	}
}
