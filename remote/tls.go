package remote

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type authenticateRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
	OrgName  string `json:"org_name"`
	DBName   string `json:"db_name"`
}

type authenticateResponse struct {
	CACert   string `json:"ca_cert"`
	CADomain string `json:"ca_domain"`
}

// bootstrapTLS exchanges credentials for a CA cert and SNI domain, per
// spec.md 4.4: "POST {user,password,org_name,db_name} to
// <cloud_api_addr>/api/internal/authenticate/client; parse
// {ca_cert, ca_domain}". Failure fails connect.
func bootstrapTLS(ctx context.Context, client *http.Client, cloudAPIAddr string, dest ProxyDestination) (*tls.Config, error) {
	body, err := json.Marshal(authenticateRequest{
		User:     dest.User,
		Password: dest.Password,
		OrgName:  dest.Org,
		DBName:   dest.DBName,
	})
	if err != nil {
		return nil, remoteSessionErr("connect", err)
	}

	url := cloudAPIAddr + "/api/internal/authenticate/client"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, remoteSessionErr("connect", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, remoteSessionErr("connect", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, remoteSessionErr("connect", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, remoteSessionErr("connect", fmt.Errorf("authenticate/client returned %d: %s", resp.StatusCode, respBody))
	}

	var authResp authenticateResponse
	if err := json.Unmarshal(respBody, &authResp); err != nil {
		return nil, internalErr(err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM([]byte(authResp.CACert)) {
		return nil, remoteSessionErr("connect", fmt.Errorf("authenticate/client returned an unparseable ca_cert"))
	}

	return &tls.Config{
		RootCAs:    pool,
		ServerName: authResp.CADomain,
	}, nil
}
