// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package deposit

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/scc-digitalhub/zenodo-cli/sdk/config"
)

const resource = "deposit/depositions"

type DepositService struct {
	http config.CoreHTTP
	log  *zap.Logger
}

func NewDepositService(_ context.Context, conf config.Config, log *zap.Logger) (*DepositService, error) {
	if conf.Core.BaseURL == "" {
		return nil, errors.New("invalid core config: empty base url")
	}
	if conf.Core.AccessToken == "" {
		return nil, ErrMissingToken
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DepositService{
		http: config.NewHTTPCore(nil, conf.Core),
		log:  log,
	}, nil
}
