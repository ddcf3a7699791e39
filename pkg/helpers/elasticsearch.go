package helpers

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// NewESClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// EnsureIndex creates index with the given JSON mapping if it does not exist yet.
func EnsureIndex(ctx context.Context, es *elasticsearch.Client, index, mapping string) error {
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := esapi.IndicesExistsRequest{Index: []string{index}}.Do(c, es)
	if err != nil {
		return err
	}
	_ = exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}

	res, err := esapi.IndicesCreateRequest{Index: index, Body: strings.NewReader(mapping)}.Do(c, es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", index, res.Status())
	}
	return nil
}
