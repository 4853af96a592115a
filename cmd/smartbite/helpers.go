package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lg/smartbite-go-api/internal/session"
	"lg/smartbite-go-api/internal/store"
)

func resolveDBPath() (string, error) {
	if strings.TrimSpace(dbPath) != "" {
		return dbPath, nil
	}
	return store.DefaultSQLitePath()
}

// withSession opens the database, loads the session and runs fn with it.
func withSession(cmd *cobra.Command, run func(ctx context.Context, s *session.Session) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	kv, err := store.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer kv.Close()

	ctx := cmd.Context()
	s, err := session.Load(ctx, kv)
	if err != nil {
		return err
	}
	return run(ctx, s)
}

func parseMealID(value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid meal id %q", value)
	}
	return v, nil
}
