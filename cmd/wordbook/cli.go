/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"wordbook/internal/app"
	"wordbook/internal/config"
	"wordbook/internal/console"
	"wordbook/internal/controller"
	applog "wordbook/internal/log"
	"wordbook/internal/model"
	"wordbook/internal/screen"
	"wordbook/internal/state"
	"wordbook/internal/store"
)

// errReported marks a failure the views already showed; main only sets the exit code.
var errReported = errors.New("reported")

// cli holds what the commands share for one invocation.
type cli struct {
	cfg      config.AppConfig
	password string
	term     *console.Terminal
	log      *slog.Logger

	dbPath   string
	stateDir string
	logLevel string

	store  *store.Store
	state  *state.Store
	models *app.Models
	views  *console.Views
	coord  *app.Coordinator
}

func newCLI(cfg config.AppConfig, password string, term *console.Terminal) *cli {
	return &cli{cfg: cfg, password: password, term: term, log: applog.WithComponent("cli")}
}

// storeOptions resolves the Term Store settings: --db wins over the configuration.
func (c *cli) storeOptions() (store.Options, error) {
	if p := strings.TrimSpace(c.dbPath); p != "" {
		return store.Options{Driver: store.DriverSQLite, Path: p}, nil
	}
	opts := store.Options{Driver: store.Driver(c.cfg.Store.Driver), Path: c.cfg.Store.Path}
	if opts.Driver == store.DriverPostgres {
		dsn, err := c.cfg.PostgresDSN(c.password)
		if err != nil {
			return opts, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
		}
		opts.DSN = dsn
	}
	return opts, nil
}

func (c *cli) openStore(ctx context.Context) (*store.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	opts, err := c.storeOptions()
	if err != nil {
		return nil, err
	}
	s, err := store.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	c.store = s
	return s, nil
}

// requireStore opens the store or reports the missing database once.
func (c *cli) requireStore(ctx context.Context) (*store.Store, error) {
	s, err := c.openStore(ctx)
	if errors.Is(err, store.ErrUnavailable) {
		c.log.Debug("store unavailable", slog.Any("err", err))
		c.term.Error(controller.MsgNoDatabase)
		return nil, errReported
	}
	return s, err
}

// stateStore returns the session store, or nil when none can be used.
func (c *cli) stateStore() controller.StateStore {
	if c.state == nil {
		dir := c.stateDir
		if dir == "" {
			d, err := c.cfg.StateDir()
			if err != nil {
				c.log.Warn("no state dir", slog.Any("err", err))
				return nil
			}
			dir = d
		}
		st, err := state.Open(dir)
		if err != nil {
			c.log.Warn("open state failed", slog.Any("err", err))
			return nil
		}
		c.state = st
	}
	return c.state
}

func (c *cli) filterMode() controller.FilterMode {
	m, ok := controller.ParseFilterMode(c.cfg.UI.FilterMode)
	if !ok && c.cfg.UI.FilterMode != "" {
		c.log.Warn("unknown filter mode, using yomi", slog.String("mode", c.cfg.UI.FilterMode))
	}
	return m
}

// screens wires the coordinator with console views over the opened store.
func (c *cli) screens(ctx context.Context) error {
	if c.coord != nil {
		return nil
	}
	s, err := c.requireStore(ctx)
	if err != nil {
		return err
	}
	c.models = app.NewModels(s)
	c.views = console.NewViews(c.term)
	c.coord = app.New(c.term, c.models)
	app.Wire(c.coord, c.models, c.views, app.Options{State: c.stateStore(), FilterMode: c.filterMode()})
	return nil
}

// enter switches to id without printing; the command renders afterwards.
func (c *cli) enter(ctx context.Context, id screen.ID) (screen.Showable, error) {
	if err := c.screens(ctx); err != nil {
		return nil, err
	}
	var err error
	c.term.Muted(func() { err = c.coord.Switch(id) })
	if err != nil {
		return nil, err
	}
	ctrl, _ := c.coord.Controller(id)
	return ctrl, nil
}

func (c *cli) wordList(ctx context.Context) (*controller.WordList, error) {
	ctrl, err := c.enter(ctx, screen.WordList)
	if err != nil {
		return nil, err
	}
	return ctrl.(*controller.WordList), nil
}

func (c *cli) wordbook(ctx context.Context) (*controller.Wordbook, error) {
	ctrl, err := c.enter(ctx, screen.Wordbook)
	if err != nil {
		return nil, err
	}
	return ctrl.(*controller.Wordbook), nil
}

// termStore is the store as the models see it; nil stays an untyped nil.
func (c *cli) termStore() model.TermStore {
	if c.store == nil {
		return nil
	}
	return c.store
}

// flush saves the active screen's state. It runs after every command and on a crash.
func (c *cli) flush() error {
	if c.coord != nil {
		c.coord.HideCurrent()
	}
	return nil
}
