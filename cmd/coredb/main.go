package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"golang.org/x/term"

	"github.com/coredb-io/coredb/internal/config"
	"github.com/coredb-io/coredb/internal/logging"
	"github.com/coredb-io/coredb/parser"
	"github.com/coredb-io/coredb/remote"
)

var version string

type cliOptions struct {
	Config       string `long:"config" description:"YAML config file; explicit flags below override its values" value-name:"path"`
	RemoteURL    string `long:"remote" description:"glaredb:// URL of the remote execution service" value-name:"url"`
	CloudAPIAddr string `long:"cloud-api-addr" description:"Cloud API address used for the TLS bootstrap" value-name:"addr"`
	DisableTLS   bool   `long:"disable-tls" description:"Skip the TLS bootstrap and dial the remote service in plaintext"`
	Prompt       bool   `long:"password-prompt" description:"Force a remote-service password prompt, overriding the URL's password"`
	File         string `short:"f" long:"file" description:"Read SQL from the file, rather than stdin" value-name:"filename" default:"-"`
	Help         bool   `long:"help" description:"Show this help"`
	Version      bool   `long:"version" description:"Show this version"`
}

// applyConfigFile loads opts.Config, if set, and lets its values fill in
// any flag the user left at its zero value; explicit flags always win.
func applyConfigFile(opts *cliOptions) *cliOptions {
	if opts.Config == "" {
		return opts
	}
	fileCfg, err := config.Load(opts.Config)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if fileCfg.LogLevel != "" {
		if _, set := os.LookupEnv("LOG_LEVEL"); !set {
			os.Setenv("LOG_LEVEL", fileCfg.LogLevel)
		}
	}
	merged := (&config.Config{
		RemoteURL:    fileCfg.RemoteURL,
		CloudAPIAddr: fileCfg.CloudAPIAddr,
		DisableTLS:   fileCfg.DisableTLS,
	}).Merge(&config.Config{
		RemoteURL:    opts.RemoteURL,
		CloudAPIAddr: opts.CloudAPIAddr,
		DisableTLS:   opts.DisableTLS,
	})
	opts.RemoteURL = merged.RemoteURL
	opts.CloudAPIAddr = merged.CloudAPIAddr
	opts.DisableTLS = merged.DisableTLS
	return opts
}

func parseOptions(args []string) *cliOptions {
	var opts cliOptions
	p := flags.NewParser(&opts, flags.None)
	p.Usage = "[option...]"
	if _, err := p.ParseArgs(args); err != nil {
		log.Fatal(err)
	}

	if opts.Help {
		p.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}
	return &opts
}

func readSQL(file string) (string, error) {
	if file == "-" {
		buf, err := io.ReadAll(os.Stdin)
		return string(buf), err
	}
	buf, err := os.ReadFile(file)
	return string(buf), err
}

func promptPassword() (string, error) {
	fmt.Print("Enter Password: ")
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pass), nil
}

func main() {
	opts := parseOptions(os.Args[1:])
	opts = applyConfigFile(opts)
	logging.InitSlog()

	sql, err := readSQL(opts.File)
	if err != nil {
		log.Fatalf("read sql: %v", err)
	}

	stmts, err := parser.Parse(sql)
	if err != nil {
		log.Fatalf("parse: %v", err)
	}
	for _, s := range stmts {
		slog.Info("parsed statement", "sql", s.Render())
	}

	if opts.RemoteURL == "" {
		return
	}

	dest, err := remote.ParseProxyDestination(opts.RemoteURL)
	if err != nil {
		log.Fatalf("parse remote url: %v", err)
	}
	if opts.Prompt {
		password, err := promptPassword()
		if err != nil {
			log.Fatalf("password prompt: %v", err)
		}
		dest.Password = password
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := connectRemote(ctx, dest, opts)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer client.Close()

	// This core doesn't decode the opaque wire payload itself (spec.md 1),
	// so no DatabaseIDDecoder is supplied; the handle carries a local id.
	handle, _, err := client.InitializeSession(ctx, nil, nil)
	if err != nil {
		log.Fatalf("initialize_session: %v", err)
	}
	slog.Info("remote session initialized", "database_id", handle.DatabaseID.String())
}

func connectRemote(ctx context.Context, dest remote.ProxyDestination, opts *cliOptions) (*remote.RemoteSessionClient, error) {
	if opts.CloudAPIAddr == "" {
		return remote.Connect(ctx, dest)
	}
	return remote.ConnectWithProxy(ctx, dest, opts.CloudAPIAddr, opts.DisableTLS)
}
