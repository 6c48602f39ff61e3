package main

import (
	"context"
	"flag"
	"io"
	"io/ioutil"
	"os"

	"github.com/zeebo/errs"

	"github.com/jtolio/shift/pkg/enc"
	"github.com/jtolio/shift/pkg/utils"
)

func (s *shift) Verify(ctx context.Context, args []string) (err error) {
	if len(args) != 2 {
		return flag.ErrHelp
	}

	plain, err := os.Open(args[0])
	if err != nil {
		return errs.Wrap(err)
	}
	defer func() { err = errs.Combine(err, plain.Close()) }()

	encrypted, err := os.Open(args[1])
	if err != nil {
		return errs.Wrap(err)
	}
	defer func() { err = errs.Combine(err, encrypted.Close()) }()

	n, err := verify(plain, encrypted, enc.NewShiftCodec(*s.flagKey), *s.flagChunkSize)
	if err != nil {
		return err
	}
	utils.L(ctx).Normalf("'%s' matches '%s' (%s).", args[1], args[0], utils.ByteFmt(n))
	return nil
}

func verify(plain, encrypted io.Reader, c enc.Codec, chunkSize int) (int64, error) {
	return io.Copy(ioutil.Discard, utils.ReaderCompare(
		enc.NewReader(plain, c, enc.Forward, chunkSize), encrypted))
}
