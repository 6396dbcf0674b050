package main

import (
	"context"
	"database/sql"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"salonsync-backend/lib/configutil"
	"salonsync-backend/lib/serviceutil"
	"salonsync-backend/lib/telemetry"
	"salonsync-backend/services/keychain"
	keychaindb "salonsync-backend/services/keychain/db"
	"salonsync-backend/services/salonboard"
	"salonsync-backend/services/syncengine"
	syncdb "salonsync-backend/services/syncengine/db"

	_ "modernc.org/sqlite"
)

func openDB(path, schema string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty")
	}
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = database.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return nil, err
	}
	return database, nil
}

func main() {
	verbose := flag.Bool("v", false, "enable verbose logging")
	flag.Parse()
	telemetry.InitSlog(*verbose)

	ctx := serviceutil.SignalContext()

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Port == 0 {
		config.Port = 8444
	}

	err = telemetry.SetupFromEnv(ctx, "salonsyncd")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer telemetry.Shutdown(context.Background())

	key, err := base64.StdEncoding.DecodeString(config.CredentialKey)
	if err != nil {
		serviceutil.Fatal("failed to decode credential key", err)
	}

	keychainDB, err := openDB(config.KeychainDatabase, keychaindb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open keychain database", err)
	}
	syncDB, err := openDB(config.SyncDatabase, syncdb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open sync database", err)
	}

	kc, err := keychain.NewService(ctx, keychainDB, key)
	if err != nil {
		serviceutil.Fatal("failed to init keychain", err)
	}

	sessions := salonboard.NewSessionManager(kc, config.PortalBaseUrl, nil)

	salonTypes := map[string]salonboard.SalonType{}
	for owner, oc := range config.Owners {
		t, err := salonboard.ParseSalonType(oc.SalonType)
		if err != nil {
			serviceutil.Fatal(fmt.Sprintf("bad salon type for owner %q", owner), err)
		}
		salonTypes[owner] = t
	}

	engine, err := syncengine.NewService(syncDB, syncengine.Options{
		Sessions: func(ctx context.Context, owner string, salonType salonboard.SalonType) (syncengine.Portal, error) {
			return sessions.EnsureSession(ctx, owner, salonType)
		},
		SalonTypes: salonTypes,
		Backfill:   time.Hour * 24 * time.Duration(config.BackfillDays),
		Lookahead:  time.Hour * 24 * time.Duration(config.LookaheadDays),
	})
	if err != nil {
		serviceutil.Fatal("failed to init sync engine", err)
	}

	go serviceutil.StartHttpServer(config.Port, newRouter(config, kc, engine))

	<-ctx.Done()
}
