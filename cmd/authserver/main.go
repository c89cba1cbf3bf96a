package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/api"
	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/database"
	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/policy"
	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/ratelimit"
	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/service"
	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/tokens"
)

// Config holds all command-line configuration
type Config struct {
	ListenAddr     string
	DBPath         string
	PrivateKeyPath string
	PublicKeyPath  string
	Issuer         string
	RolesPath      string
	RotateRefresh  bool
	Users          UserFlag
}

// UserCredentials holds a seeded username and password
type UserCredentials struct {
	Username string
	Password string
}

// UserFlag is a custom flag type for repeatable -user flags
type UserFlag []UserCredentials

func (u *UserFlag) String() string {
	return fmt.Sprintf("%v", *u)
}

func (u *UserFlag) Set(value string) error {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("user must be in format 'username:password'")
	}
	*u = append(*u, UserCredentials{Username: parts[0], Password: parts[1]})
	return nil
}

func parseFlags() *Config {
	cfg := &Config{}
	flag.StringVar(&cfg.ListenAddr, "listen", ":8080", "address to listen on")
	flag.StringVar(&cfg.DBPath, "db", "auth.db", "path to the sqlite database")
	flag.StringVar(&cfg.PrivateKeyPath, "private-key", "keys/private.pem", "path to the RSA private key (PEM)")
	flag.StringVar(&cfg.PublicKeyPath, "public-key", "keys/public.pem", "path to the RSA public key (PEM)")
	flag.StringVar(&cfg.Issuer, "issuer", "jwt-auth-service", "issuer claim for minted access tokens")
	flag.StringVar(&cfg.RolesPath, "roles", "", "optional path to a JSON role catalog (username -> roles)")
	flag.BoolVar(&cfg.RotateRefresh, "rotate-refresh", false, "rotate refresh tokens on every refresh")
	flag.Var(&cfg.Users, "user", "seed a user as 'username:password' (repeatable)")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()

	// key material is loaded exactly once; a missing or malformed key is a
	// configuration error and the process must not come up without it
	signingKey, err := tokens.LoadSigningKey(cfg.PrivateKeyPath)
	if err != nil {
		log.Fatalf("failed to load signing key: %v\n", err)
	}
	verificationKey, err := tokens.LoadVerificationKey(cfg.PublicKeyPath)
	if err != nil {
		log.Fatalf("failed to load verification key: %v\n", err)
	}

	store, err := database.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v\n", err)
	}
	defer store.Close()

	roles := policy.Roles(policy.DefaultRoles)
	if cfg.RolesPath != "" {
		catalog, err := policy.NewCatalog(cfg.RolesPath)
		if err != nil {
			log.Fatalf("failed to load role catalog: %v\n", err)
		}
		roles = catalog.Roles
	}

	seedUsers(store, cfg.Users)

	issuer := tokens.NewIssuer(signingKey, cfg.Issuer)
	verifier := tokens.NewVerifier(verificationKey)

	var opts []service.Option
	if cfg.RotateRefresh {
		opts = append(opts, service.WithRefreshRotation())
	}
	svc := service.New(store.IdentityStore(), store.RefreshStore(), issuer, roles, opts...)

	limiter := ratelimit.NewFixedWindow(ratelimit.DefaultLimit, ratelimit.DefaultWindow)
	go sweepLimiter(limiter)

	a := api.New(svc, verifier, limiter)
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: a.Router(),
	}

	go func() {
		log.Printf("listening on %s\n", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v\n", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown failed: %v\n", err)
	}
}

// seedUsers inserts bootstrap identities. Registration is out of scope for
// the server itself; accounts come from the deployment.
func seedUsers(store *database.SQLiteStore, users UserFlag) {
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash seed password for %q: %v\n", u.Username, err)
		}
		if err := store.InsertIdentity(uuid.NewString(), u.Username, hash); err != nil {
			// already present from a previous run
			log.Printf("seed user %q: %v\n", u.Username, err)
		}
	}
}

func sweepLimiter(limiter *ratelimit.FixedWindow) {
	ticker := time.NewTicker(ratelimit.DefaultWindow)
	defer ticker.Stop()
	for range ticker.C {
		limiter.Sweep()
	}
}
