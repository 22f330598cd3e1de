// Package app provides the reconciliation service: the only mutator of
// player records and the leaderboard. Every entry point runs one
// read-mutate-persist cycle over the shared document.
package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/okian/arrows/internal/adapters/storage"
	"github.com/okian/arrows/internal/domain/board"
	"github.com/okian/arrows/internal/domain/catalog"
	"github.com/okian/arrows/internal/domain/player"
	"github.com/okian/arrows/pkg/logger"
	"github.com/okian/arrows/pkg/metrics"
)

// activeWindow is the look-back used by the "active today" counter.
const activeWindow = 24 * time.Hour

// Service implements the reconciliation operations exposed to the HTTP
// layer. A single mutex serializes the read-mutate-persist cycle; the
// historical implementation left this race open and could drop one of
// two concurrent score submissions for the same player.
type Service struct {
	mu sync.Mutex

	gateway       storage.Gateway
	boardSize     int
	startingCoins int64
	touchOnLogin  bool
	notify        func([]board.Entry)
	now           func() time.Time

	started bool
	logger  logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		boardSize:     board.DefaultSize,
		startingCoins: 100,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start prepares the service and materializes the document file so a
// fresh deployment has state to read on its first request.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.gateway == nil {
		s.gateway = storage.NewFileGateway()
	}

	doc := s.loadDocument(ctx)
	s.persist(ctx, doc)
	s.updateDocumentGauges(doc)

	s.started = true
	s.logger.Info(ctx, "reconciliation service started",
		logger.Int("players", len(doc.Players)),
		logger.Int("leaderboard", len(doc.Leaderboard)),
		logger.Int("boardSize", s.boardSize),
		logger.Int64("startingCoins", s.startingCoins),
		logger.Bool("touchOnLogin", s.touchOnLogin),
	)
	return nil
}

// Stop marks the service stopped. State lives in the document file, so
// there is nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "reconciliation service stopped")
}

// Login creates or refreshes the player record and mirrors it onto the
// leaderboard. It never changes coins or level for an existing player.
func (s *Service) Login(ctx context.Context, id, handle, given, family string) (PlayerView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return PlayerView{}, ErrMissingPlayerID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	now := s.now().Unix()
	doc := s.loadDocument(ctx)

	name := player.DisplayName(handle, given, family, id)
	store := s.playerStore(doc)
	rec, created := store.UpsertOnLogin(id, name, now)
	if created {
		s.logger.Info(ctx, "created player", logger.String("id", id), logger.String("name", name))
	}
	s.reconcileBoard(doc, id, name, rec, now)

	s.persist(ctx, doc)
	s.afterReconcile(ctx, "login", doc, start)
	return newPlayerView(id, rec), nil
}

// SubmitScore accrues a score submission and mirrors the result onto
// the leaderboard. Replaying the same submission legitimately doubles
// the coin award; there is no deduplication.
func (s *Service) SubmitScore(ctx context.Context, id, nameOverride string, level int, coinsEarned int64) (ScoreResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ScoreResult{}, ErrMissingPlayerID
	}
	if coinsEarned < 0 {
		return ScoreResult{}, ErrNegativeCoins
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	now := s.now().Unix()
	doc := s.loadDocument(ctx)

	store := s.playerStore(doc)
	rec := store.ApplyScore(id, level, coinsEarned, nameOverride, now)

	finalName := nameOverride
	if finalName == "" {
		finalName = rec.DisplayName
	}
	s.reconcileBoard(doc, id, finalName, rec, now)

	s.persist(ctx, doc)
	s.afterReconcile(ctx, "score", doc, start)
	return ScoreResult{Coins: rec.Coins, Level: rec.BestLevel, DisplayName: rec.DisplayName}, nil
}

// Leaderboard returns the ranked top entries. limit <= 0 falls back to
// the configured board size.
func (s *Service) Leaderboard(ctx context.Context, limit int) (LeaderboardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadDocument(ctx)
	if limit <= 0 {
		limit = s.boardSize
	}
	return LeaderboardView{
		Entries:      board.TopN(doc.Leaderboard, limit),
		TotalPlayers: len(doc.Players),
		UpdatedAt:    s.now().Unix(),
	}, nil
}

// Stats computes document-wide counters.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadDocument(ctx)
	cutoff := s.now().Add(-activeWindow).Unix()

	st := Stats{TotalPlayers: len(doc.Players)}
	for _, rec := range doc.Players {
		st.TotalCoins += rec.Coins
		if rec.BestLevel > 1 {
			st.GamesStarted++
		}
		if rec.LastActiveAt >= cutoff {
			st.ActiveToday++
		}
	}
	return st, nil
}

// Catalog returns the cosmetic shop contents.
func (s *Service) Catalog(ctx context.Context) (catalog.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadDocument(ctx)
	return doc.Catalog, nil
}

// SelectCosmetic switches a player's active cosmetic. Rejected
// selections leave the document untouched.
func (s *Service) SelectCosmetic(ctx context.Context, id, cosmeticID string) (PlayerView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return PlayerView{}, ErrMissingPlayerID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadDocument(ctx)
	rec, err := s.playerStore(doc).SelectCosmetic(id, cosmeticID)
	if err != nil {
		return PlayerView{}, err
	}
	s.persist(ctx, doc)
	return newPlayerView(id, rec), nil
}

// PurchaseCosmetic unlocks a catalog item against the player's coin
// balance. Owned items succeed without charging again.
func (s *Service) PurchaseCosmetic(ctx context.Context, id, cosmeticID string) (PlayerView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return PlayerView{}, ErrMissingPlayerID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadDocument(ctx)
	item, ok := doc.Catalog.Find(cosmeticID)
	if !ok {
		return PlayerView{}, ErrUnknownCosmetic
	}
	rec, err := s.playerStore(doc).PurchaseCosmetic(id, item)
	if err != nil {
		return PlayerView{}, err
	}
	s.persist(ctx, doc)
	s.updateDocumentGauges(doc)
	return newPlayerView(id, rec), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	st, _ := s.Stats(context.Background())

	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]interface{}{
		"started":       s.started,
		"boardSize":     s.boardSize,
		"startingCoins": s.startingCoins,
		"touchOnLogin":  s.touchOnLogin,
		"totalPlayers":  st.TotalPlayers,
		"totalCoins":    st.TotalCoins,
		"activeToday":   st.ActiveToday,
	}
}

func (s *Service) playerStore(doc *storage.Document) *player.Store {
	return player.NewStore(doc.Players,
		player.WithStartingCoins(s.startingCoins),
		player.WithTouchOnLogin(s.touchOnLogin),
	)
}

// reconcileBoard mirrors a player record onto the leaderboard and
// enforces the bound.
func (s *Service) reconcileBoard(doc *storage.Document, id, name string, rec *player.Record, now int64) {
	doc.Leaderboard = board.Upsert(doc.Leaderboard, id, name, rec.BestLevel, rec.Coins, now)
	before := len(doc.Leaderboard)
	doc.Leaderboard = board.Truncate(doc.Leaderboard, s.boardSize)
	metrics.RecordLeaderboardEvictions(before - len(doc.Leaderboard))
}

// loadDocument degrades to an empty document on load failure so a
// broken data file does not take the whole API down.
func (s *Service) loadDocument(ctx context.Context) *storage.Document {
	doc, err := s.gateway.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "document load failed; starting from empty document", logger.Error(err))
		metrics.RecordDocumentLoadFailure()
		return storage.NewDocument()
	}
	return doc
}

// persist writes the document back. A save failure is a soft failure:
// the caller still gets the in-memory result, it just is not durable.
func (s *Service) persist(ctx context.Context, doc *storage.Document) {
	start := time.Now()
	if err := s.gateway.Save(ctx, doc); err != nil {
		s.logger.Warn(ctx, "document save failed; returning non-durable result", logger.Error(err))
		metrics.RecordDocumentSaveFailure()
		return
	}
	metrics.RecordDocumentSaveLatency(float64(time.Since(start).Milliseconds()))
}

func (s *Service) afterReconcile(ctx context.Context, op string, doc *storage.Document, start time.Time) {
	metrics.RecordReconciliation(op)
	metrics.RecordReconciliationLatency(float64(time.Since(start).Milliseconds()))
	s.updateDocumentGauges(doc)
	if s.notify != nil {
		s.notify(board.Rank(doc.Leaderboard))
	}
}

func (s *Service) updateDocumentGauges(doc *storage.Document) {
	metrics.UpdateTotalPlayers(len(doc.Players))
	metrics.UpdateLeaderboardSize(len(doc.Leaderboard))
	var coins int64
	for _, rec := range doc.Players {
		coins += rec.Coins
	}
	metrics.UpdateTotalCoins(coins)
}
