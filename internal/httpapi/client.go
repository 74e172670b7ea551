package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/alexanderramin/boardwalk/internal/action"
	"github.com/alexanderramin/boardwalk/internal/app"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/domain"
	"github.com/alexanderramin/boardwalk/internal/importer"
)

// Client calls a boardwalk server. Structured failures come back inside the
// Result; transport problems and unreadable responses are returned as errors.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Actions returns an Actions set backed by HTTP calls.
func (c *Client) Actions() *app.Actions {
	return &app.Actions{
		ListBoards: call[contract.ListBoardsInput, []*domain.Board](c, http.MethodGet,
			func(contract.ListBoardsInput) string { return "/api/boards" }, false),
		GetBoard: call[contract.GetBoardInput, *domain.BoardSnapshot](c, http.MethodGet,
			func(in contract.GetBoardInput) string { return "/api/boards/" + url.PathEscape(in.BoardID) }, false),
		CreateBoard: call[contract.CreateBoardInput, *domain.Board](c, http.MethodPost,
			func(contract.CreateBoardInput) string { return "/api/boards" }, true),
		ImportBoard: call[importer.Schema, *domain.BoardSnapshot](c, http.MethodPost,
			func(importer.Schema) string { return "/api/boards/import" }, true),
		UpdateBoard: call[contract.UpdateBoardInput, *domain.Board](c, http.MethodPatch,
			func(in contract.UpdateBoardInput) string { return "/api/boards/" + url.PathEscape(in.BoardID) }, true),
		DeleteBoard: call[contract.DeleteBoardInput, contract.Deleted](c, http.MethodDelete,
			func(in contract.DeleteBoardInput) string { return "/api/boards/" + url.PathEscape(in.BoardID) }, false),

		CreateList: call[contract.CreateListInput, *domain.List](c, http.MethodPost,
			func(in contract.CreateListInput) string { return "/api/boards/" + url.PathEscape(in.BoardID) + "/lists" }, true),
		UpdateList: call[contract.UpdateListInput, *domain.List](c, http.MethodPatch,
			func(in contract.UpdateListInput) string { return "/api/lists/" + url.PathEscape(in.ListID) }, true),
		DeleteList: call[contract.DeleteListInput, contract.Deleted](c, http.MethodDelete,
			func(in contract.DeleteListInput) string { return "/api/lists/" + url.PathEscape(in.ListID) }, false),

		GetCard: call[contract.GetCardInput, *domain.CardWithList](c, http.MethodGet,
			func(in contract.GetCardInput) string { return "/api/cards/" + url.PathEscape(in.CardID) }, false),
		CreateCard: call[contract.CreateCardInput, *domain.Card](c, http.MethodPost,
			func(in contract.CreateCardInput) string { return "/api/lists/" + url.PathEscape(in.ListID) + "/cards" }, true),
		UpdateCard: call[contract.UpdateCardInput, *domain.Card](c, http.MethodPatch,
			func(in contract.UpdateCardInput) string { return "/api/cards/" + url.PathEscape(in.CardID) }, true),
		DeleteCard: call[contract.DeleteCardInput, contract.Deleted](c, http.MethodDelete,
			func(in contract.DeleteCardInput) string { return "/api/cards/" + url.PathEscape(in.CardID) }, false),

		ReorderLists: call[contract.ReorderListsInput, contract.ReorderConfirmation](c, http.MethodPost,
			func(in contract.ReorderListsInput) string { return "/api/boards/" + url.PathEscape(in.BoardID) + "/lists/order" }, true),
		ReorderCards: call[contract.ReorderCardsInput, contract.ReorderConfirmation](c, http.MethodPost,
			func(in contract.ReorderCardsInput) string { return "/api/boards/" + url.PathEscape(in.BoardID) + "/cards/order" }, true),
	}
}

func call[In, Out any](c *Client, method string, path func(In) string, withBody bool) action.Action[In, Out] {
	return func(ctx context.Context, in In) (*action.Result[Out], error) {
		var body io.Reader
		if withBody {
			b, err := sonic.Marshal(in)
			if err != nil {
				return nil, fmt.Errorf("encoding request: %w", err)
			}
			body = bytes.NewReader(b)
		}
		target := c.baseURL + path(in)
		req, err := http.NewRequestWithContext(ctx, method, target, body)
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		if withBody {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, target, err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}
		var res action.Result[Out]
		if err := sonic.Unmarshal(raw, &res); err != nil {
			return nil, fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err)
		}
		if res.Code == "" && resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%s %s: unexpected status %d", method, target, resp.StatusCode)
		}
		return &res, nil
	}
}
