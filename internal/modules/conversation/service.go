// README: Conversation orchestrator: extract, dispatch, synthesize, link.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"jetzy/internal/ai"
	"jetzy/internal/links"
	"jetzy/internal/modules/travel"
	"jetzy/internal/modules/usercontext"
)

// Reply is what a chat turn produces for the transport layer.
type Reply struct {
	Text  string       `json:"text"`
	Links []links.Link `json:"links"`
}

type Service struct {
	gateway     ai.CompletionClient
	extractor   *Extractor
	synthesizer *Synthesizer
	dispatcher  *travel.Service
	store       usercontext.Store
	linker      *links.Processor
	log         *zap.Logger

	now func() time.Time
}

func NewService(gateway ai.CompletionClient, factory ai.ClientFactory, dispatcher *travel.Service, store usercontext.Store, linker *links.Processor, log *zap.Logger) *Service {
	return &Service{
		gateway:     gateway,
		extractor:   NewExtractor(factory, log),
		synthesizer: NewSynthesizer(gateway, log),
		dispatcher:  dispatcher,
		store:       store,
		linker:      linker,
		log:         log,
		now:         time.Now,
	}
}

// ProcessMessage runs one full chat turn for userID. Model and provider
// failures produce an apology reply rather than an error; only context
// storage failures on load are fatal.
func (s *Service) ProcessMessage(ctx context.Context, userID, message string) (*Reply, error) {
	uc, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load context for %s: %w", userID, err)
	}

	prior := uc.LastTurns(extractionHistory)
	uc.AppendTurn(usercontext.RoleUser, message, s.now())

	ents := s.extractor.Extract(ctx, message, prior)
	s.log.Info("processing chat turn",
		zap.String("user_id", userID),
		zap.String("intent", string(ents.Intent)))

	env, err := s.dispatcher.Dispatch(ctx, ents)
	if err != nil {
		s.log.Error("travel dispatch failed", zap.String("user_id", userID), zap.Error(err))
		return s.apologize(ctx, uc, categoryOf(err)), nil
	}

	text, err := s.synthesizer.Synthesize(ctx, message, ents.Intent, env, uc.LastTurns(synthesisHistory))
	if err != nil {
		s.log.Error("response synthesis failed", zap.String("user_id", userID), zap.Error(err))
		return s.apologize(ctx, uc, "response generation"), nil
	}

	lks := links.BookingLinks(env)
	if len(lks) == 0 {
		lks = s.linker.Extract(text)
	}

	uc.AppendTurn(usercontext.RoleAssistant, text, s.now())
	s.save(ctx, uc)

	return &Reply{Text: text, Links: lks}, nil
}

// apologize keeps the user's turn in history so a retry has context, but
// records no assistant turn for the failed attempt.
func (s *Service) apologize(ctx context.Context, uc *usercontext.UserContext, category string) *Reply {
	s.save(ctx, uc)
	return &Reply{
		Text: fmt.Sprintf(
			"I'm having trouble processing your request. There was an error: %s. Please try again in a moment, or let me know if I can help with something else.",
			category,
		),
		Links: []links.Link{},
	}
}

func (s *Service) save(ctx context.Context, uc *usercontext.UserContext) {
	if err := s.store.Put(ctx, uc); err != nil {
		s.log.Warn("saving context", zap.String("user_id", uc.UserID), zap.Error(err))
	}
}

func categoryOf(err error) string {
	var perr *travel.ProviderError
	if errors.As(err, &perr) {
		return fmt.Sprintf("%s search", perr.Domain)
	}
	return "travel search"
}

// Close releases the model gateway and the travel providers together.
func (s *Service) Close() error {
	var wg sync.WaitGroup
	errc := make(chan error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := s.gateway.Close(); err != nil {
			errc <- err
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.dispatcher.Close(); err != nil {
			errc <- err
		}
	}()
	wg.Wait()
	close(errc)

	return <-errc
}
