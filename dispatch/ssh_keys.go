package dispatch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"golang.org/x/crypto/ssh"

	"github.com/coredb-io/coredb/catalog"
)

// sshConnectionParams is the parsed form of a tunnel's connection string,
// "user@host[:port]" or any URL-shaped form net/url accepts.
type sshConnectionParams struct {
	user string
	host string
}

func parseSSHConnectionString(raw string) (sshConnectionParams, error) {
	if raw == "" {
		return sshConnectionParams{}, fmt.Errorf("empty ssh connection string")
	}
	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "ssh://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return sshConnectionParams{}, fmt.Errorf("parse connection string: %w", err)
	}
	if u.User == nil || u.User.Username() == "" {
		return sshConnectionParams{}, fmt.Errorf("connection string missing user: %q", raw)
	}
	return sshConnectionParams{user: u.User.Username(), host: u.Hostname()}, nil
}

// deriveSSHPublicKeyLine parses a PEM-encoded private key and renders its
// public counterpart as an authorized-keys line, per spec.md 4.3: "parse
// the stored key material, derive the public key ... emit '<public-key>
// <user>'".
func deriveSSHPublicKeyLine(keyMaterial, user string) (string, error) {
	signer, err := ssh.ParsePrivateKey([]byte(keyMaterial))
	if err != nil {
		return "", fmt.Errorf("parse ssh private key: %w", err)
	}
	pub := signer.PublicKey()
	line := strings.TrimSuffix(string(ssh.MarshalAuthorizedKey(pub)), "\n")
	return fmt.Sprintf("%s %s", line, user), nil
}

func buildSSHKeys(d *Dispatcher, mem memory.Allocator) (arrow.Record, error) {
	b := array.NewRecordBuilder(mem, SSHKeysSchema)
	defer b.Release()

	tunnelOid := b.Field(0).(*array.Uint32Builder)
	tunnelName := b.Field(1).(*array.StringBuilder)
	sshKey := b.Field(2).(*array.StringBuilder)

	for _, e := range d.Catalog.EntriesOfKind(catalog.KindTunnel) {
		if e.Tunnel == nil {
			return nil, invariant(e, "TunnelDetail")
		}
		if !strings.EqualFold(e.Tunnel.TunnelType, "ssh") {
			continue
		}

		params, err := parseSSHConnectionString(e.Tunnel.ConnectionString)
		if err != nil {
			return nil, catalog.NewInvariantViolation(
				fmt.Sprintf("tunnel %s: invalid connection string", e.Name), err)
		}

		line, err := deriveSSHPublicKeyLine(e.Tunnel.KeyMaterial, params.user)
		if err != nil {
			return nil, catalog.NewInvariantViolation(
				fmt.Sprintf("tunnel %s: invalid key material", e.Name), err)
		}

		tunnelOid.Append(e.Oid)
		tunnelName.Append(e.Name)
		sshKey.Append(line)
	}

	return b.NewRecord(), nil
}
