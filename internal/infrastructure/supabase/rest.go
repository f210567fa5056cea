package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"telesalud-admin/internal/domain/query"
	"telesalud-admin/internal/domain/repository"
)

// RestClient is the PostgREST implementation of repository.TableClient.
type RestClient struct {
	*Client
}

func NewRestClient(c *Client) repository.TableClient {
	return &RestClient{Client: c}
}

func (c *RestClient) Select(ctx context.Context, sel query.Select, dest interface{}) error {
	path := "/rest/v1/" + sel.Table + "?" + EncodeSelect(sel)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, bearerFrom(ctx))
	if err != nil {
		return err
	}

	resp, raw, err := c.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeStoreError(resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s rows: %w", sel.Table, err)
	}
	return nil
}

func (c *RestClient) Insert(ctx context.Context, table string, record interface{}) (*repository.Ack, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/rest/v1/"+table, record, bearerFrom(ctx))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=minimal,count=exact")

	resp, raw, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeStoreError(resp.StatusCode, raw)
	}
	return &repository.Ack{Table: table, Count: affected(resp, 1)}, nil
}

func (c *RestClient) Update(ctx context.Context, table string, record interface{}, match query.Predicate) (*repository.Ack, error) {
	values := url.Values{}
	addPredicate(values, match)
	req, err := c.newRequest(ctx, http.MethodPatch, "/rest/v1/"+table+"?"+values.Encode(), record, bearerFrom(ctx))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=minimal,count=exact")

	resp, raw, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeStoreError(resp.StatusCode, raw)
	}
	return &repository.Ack{Table: table, Count: affected(resp, 0)}, nil
}

// EncodeSelect renders sel as a PostgREST query string:
// select=*,tipo_equipo(*)&nombre=ilike.*JUA*&dni=eq.123
func EncodeSelect(sel query.Select) string {
	columns := []string{"*"}
	for _, rel := range sel.Embeds {
		columns = append(columns, rel.Table+"(*)")
	}

	values := url.Values{}
	values.Set("select", strings.Join(columns, ","))
	for _, p := range sel.Predicates {
		addPredicate(values, p)
	}
	return values.Encode()
}

func addPredicate(values url.Values, p query.Predicate) {
	switch p.Op {
	case query.OpILike:
		values.Add(p.Column, fmt.Sprintf("ilike.*%v*", p.Value))
	default:
		values.Add(p.Column, fmt.Sprintf("eq.%v", p.Value))
	}
}

func bearerFrom(ctx context.Context) string {
	token, _ := repository.AccessTokenFromContext(ctx)
	return token
}

func decodeStoreError(status int, raw []byte) error {
	storeErr := &repository.StoreError{Status: status}
	if err := json.Unmarshal(raw, storeErr); err != nil || storeErr.Message == "" {
		storeErr.Message = strings.TrimSpace(string(raw))
	}
	return storeErr
}

// affected reads the total from a Content-Range header ("0-0/1" or "*/1").
func affected(resp *http.Response, fallback int64) int64 {
	cr := resp.Header.Get("Content-Range")
	slash := strings.LastIndex(cr, "/")
	if slash < 0 {
		return fallback
	}
	n, err := strconv.ParseInt(cr[slash+1:], 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
