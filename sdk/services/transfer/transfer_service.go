// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/scc-digitalhub/zenodo-cli/sdk/config"
	"github.com/scc-digitalhub/zenodo-cli/sdk/services/deposit"
)

// ObjectSource reads files given as s3://bucket/key.
type ObjectSource interface {
	Stat(ctx context.Context, bucket, key string) (int64, error)
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error)
}

type TransferService struct {
	deposits *deposit.DepositService
	log      *zap.Logger

	s3Conf  config.S3Config
	objects ObjectSource // created on first s3:// path
}

func NewTransferService(ctx context.Context, conf config.Config, log *zap.Logger) (*TransferService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	deposits, err := deposit.NewDepositService(ctx, conf, log)
	if err != nil {
		return nil, err
	}
	return &TransferService{deposits: deposits, log: log, s3Conf: conf.S3}, nil
}

func (s *TransferService) objectSource(ctx context.Context) (ObjectSource, error) {
	if s.objects != nil {
		return s.objects, nil
	}
	s3c, err := config.NewS3Client(ctx, s.s3Conf)
	if err != nil {
		return nil, fmt.Errorf("S3 init failed: %w", err)
	}
	s.objects = s3c
	return s.objects, nil
}
