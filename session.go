package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Zdifah/Game-Othello/config"
	"github.com/Zdifah/Game-Othello/engine"
	"github.com/Zdifah/Game-Othello/match"
	"github.com/Zdifah/Game-Othello/player"
	"github.com/Zdifah/Game-Othello/sgf"
	"github.com/Zdifah/Game-Othello/spectate"
)

// session is one game together with whatever follows it: the SGF recorder
// and the spectator server.
type session struct {
	ctrl *match.Controller
	rec  *sgf.GameRecord
	hub  *spectate.Hub
	srv  *http.Server
	log  *log.Logger
}

// newSession builds a game from gc. The match is not started; attach any
// front end first and then call ctrl.Start.
func newSession(gc config.GameConfig, spectateAddr string, logger *log.Logger) (*session, error) {
	first, err := engine.ParseDisc(gc.FirstTurn)
	if err != nil {
		return nil, err
	}
	g, err := match.NewGame(gc.BoardSize, engine.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	black := player.New(gc.BlackName)
	white := player.New(gc.WhiteName)
	s := &session{
		ctrl: match.New(g, black, white, first),
		log:  logger,
	}

	if gc.RecordGames {
		if err := s.record(g, black.Name(), white.Name(), first); err != nil {
			logger.Printf("WARN game will not be recorded: %s", err)
		}
	}

	if spectateAddr != "" {
		s.hub = spectate.NewHub(g)
		g.Subscribe(s.hub)
		s.srv = &http.Server{
			Addr:              spectateAddr,
			Handler:           spectate.NewServer(s.hub, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func(srv *http.Server) {
			logger.Printf("spectator server listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("WARN spectator server: %s", err)
			}
		}(s.srv)
	}
	return s, nil
}

func (s *session) record(g *engine.Game, black, white string, first engine.Disc) error {
	dir, err := config.HistoryDir()
	if err != nil {
		return err
	}
	rec, err := sgf.NewGameRecord(dir, g.Rows(), black, white)
	if err != nil {
		return err
	}
	if err := rec.AddSetupPosition(g.Board()); err != nil {
		rec.Close()
		return err
	}
	if err := rec.SetFirstTurn(first); err != nil {
		rec.Close()
		return err
	}
	g.Subscribe(rec)
	s.rec = rec
	s.log.Printf("recording game to %s", rec.FilePath)
	return nil
}

// Close stops recording and spectating. It is safe to call more than once.
func (s *session) Close() {
	s.ctrl.Close()
	if s.rec != nil {
		if err := s.rec.Err(); err != nil {
			s.log.Printf("WARN game record %s: %s", s.rec.FilePath, err)
		}
		s.rec.Close()
	}
	if s.hub != nil {
		s.hub.Close()
	}
	if s.srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(ctx); err != nil {
			s.log.Printf("WARN spectator server shutdown: %s", err)
		}
		s.srv = nil
	}
}
