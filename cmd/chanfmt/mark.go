package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"chanfmt/savedreply"
	"chanfmt/state"
)

func markReplies(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("mark")

	db := cmd.String("db")
	if len(db) == 0 {
		db = env.Cfg.SavedReplies.Database
	}
	if len(db) == 0 {
		return errors.New("no saved replies database has been specified")
	}

	board := strings.Trim(cmd.String("board"), "/")
	nos, err := parsePostNumbers(cmd.Args().Slice())
	if err != nil {
		return err
	}

	if err := savedreply.Save(ctx, db, board, nos...); err != nil {
		return err
	}
	log.Info("Replies saved", zap.String("db", db), zap.String("board", board), zap.Ints("posts", nos))
	return nil
}

func parsePostNumbers(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, errors.New("no post numbers have been specified")
	}
	nos := make([]int, 0, len(args))
	for _, arg := range args {
		no, err := strconv.Atoi(strings.TrimPrefix(strings.TrimPrefix(arg, ">>"), "#p"))
		if err != nil || no <= 0 {
			return nil, fmt.Errorf("bad post number %q", arg)
		}
		nos = append(nos, no)
	}
	return nos, nil
}
