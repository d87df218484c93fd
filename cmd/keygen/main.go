// Command keygen mints an API key for the default tenant and prints the
// raw key once. Intended for bootstrapping: the first admin key has to
// exist before the admin HTTP endpoints can be used.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ocuscreen/ocuscreen/internal/auth"
	"github.com/ocuscreen/ocuscreen/internal/config"
	"github.com/ocuscreen/ocuscreen/internal/store"
	"github.com/ocuscreen/ocuscreen/pkg/models"
)

func main() {
	name := flag.String("name", "bootstrap-admin", "display name for the key")
	scopes := flag.String("scopes", "read,write,admin", "comma-separated scopes")
	flag.Parse()

	if err := run(*name, strings.Split(*scopes, ",")); err != nil {
		fmt.Fprintln(os.Stderr, "keygen:", err)
		os.Exit(1)
	}
}

func run(name string, scopes []string) error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := store.Connect(ctx, config.DatabaseConfig{
		URL:             dbURL,
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	st := store.NewPostgresStore(pool)

	tenant, err := st.GetDefaultTenant(ctx)
	if err != nil {
		return fmt.Errorf("looking up default tenant: %w", err)
	}

	rawKey, hash, err := auth.MintKey()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	key := &models.APIKey{
		ID:        uuid.New(),
		TenantID:  tenant.ID,
		Name:      name,
		KeyHash:   hash,
		KeyPrefix: rawKey[:auth.KeyPrefixLen],
		Scopes:    scopes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.CreateAPIKey(ctx, key); err != nil {
		return fmt.Errorf("storing API key: %w", err)
	}

	fmt.Printf("API key created for tenant %q (%s)\n", tenant.Name, tenant.ID)
	fmt.Printf("  name:   %s\n", key.Name)
	fmt.Printf("  scopes: %s\n", strings.Join(key.Scopes, ", "))
	fmt.Printf("  key:    %s\n", rawKey)
	fmt.Println("Store this key now; it cannot be recovered later.")
	return nil
}
