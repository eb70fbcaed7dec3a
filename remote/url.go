package remote

import (
	"net/url"
	"strconv"
	"strings"
)

const defaultPort = 6443

// ProxyDestination is the parsed form of a glaredb:// remote-exec URL
// (spec.md 4.4/6): glaredb://<user>:<password>@<org>.<host>[:<port>]/[<engine>.]<db>.
type ProxyDestination struct {
	User          string
	Password      string
	Org           string
	DBName        string
	ComputeEngine string // "" when absent
	Dst           string // http://<host>:<port>, upgraded to https by the caller
}

// ParseProxyDestination parses a glaredb:// URL into its components. It
// never guesses a missing part; every rejection is InvalidRemoteExecUrl.
func ParseProxyDestination(raw string) (ProxyDestination, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return ProxyDestination{}, invalidURL(err.Error())
	}
	if u.Scheme != "glaredb" {
		return ProxyDestination{}, invalidURL("scheme must be glaredb, found " + u.Scheme)
	}
	if u.User == nil {
		return ProxyDestination{}, invalidURL("missing user")
	}
	user := u.User.Username()
	if user == "" {
		return ProxyDestination{}, invalidURL("missing user")
	}
	password, hasPassword := u.User.Password()
	if !hasPassword || password == "" {
		return ProxyDestination{}, invalidURL("missing password")
	}

	hostname := u.Hostname()
	if !strings.Contains(hostname, ".") {
		return ProxyDestination{}, invalidURL("host must contain an org segment: " + hostname)
	}
	org, host, _ := strings.Cut(hostname, ".")
	if org == "" || host == "" {
		return ProxyDestination{}, invalidURL("host must contain an org segment: " + hostname)
	}

	port := u.Port()
	if port == "" {
		port = strconv.Itoa(defaultPort)
	}

	dbPath := strings.TrimPrefix(u.Path, "/")
	if dbPath == "" {
		return ProxyDestination{}, invalidURL("missing database name")
	}

	var engine, dbName string
	if before, after, found := strings.Cut(dbPath, "."); found {
		engine, dbName = before, after
	} else {
		dbName = dbPath
	}

	return ProxyDestination{
		User:          user,
		Password:      password,
		Org:           org,
		DBName:        dbName,
		ComputeEngine: engine,
		Dst:           "http://" + host + ":" + port,
	}, nil
}

// WithTLS upgrades Dst to https, used when the TLS bootstrap succeeds and
// disable_tls was not requested (spec.md 4.4).
func (p ProxyDestination) WithTLS() ProxyDestination {
	p.Dst = "https" + strings.TrimPrefix(p.Dst, "http")
	return p
}
