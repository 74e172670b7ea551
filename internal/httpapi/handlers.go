package httpapi

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alexanderramin/boardwalk/internal/action"
	"github.com/alexanderramin/boardwalk/internal/app"
	"github.com/alexanderramin/boardwalk/internal/contract"
	"github.com/alexanderramin/boardwalk/internal/importer"
)

type errorBody struct {
	Error string             `json:"error"`
	Code  contract.ErrorCode `json:"code"`
}

// statusFor maps a result onto its HTTP status.
func statusFor(code contract.ErrorCode) int {
	switch code {
	case "":
		return http.StatusOK
	case contract.ErrValidation:
		return http.StatusUnprocessableEntity
	case contract.ErrUnauthorized:
		return http.StatusForbidden
	case contract.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func run[In, Out any](c echo.Context, a action.Action[In, Out], in In) error {
	res, err := a(c.Request().Context(), in)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Failed to complete the request", Code: contract.ErrPersistence})
	}
	return c.JSON(statusFor(res.Code), res)
}

func rejected(c echo.Context, fe contract.FieldErrors) error {
	return c.JSON(http.StatusUnprocessableEntity, action.Result[struct{}]{Code: contract.ErrValidation, FieldErrors: fe})
}

// rejectedForBoard reports fe only once the caller is known to have access
// to the URL's board; otherwise the access refusal is returned instead.
func rejectedForBoard(c echo.Context, acts *app.Actions, fe contract.FieldErrors) error {
	res, err := acts.GetBoard(c.Request().Context(), contract.GetBoardInput{BoardID: c.Param("boardId")})
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Failed to complete the request", Code: contract.ErrPersistence})
	}
	if res.Code != "" {
		return c.JSON(statusFor(res.Code), errorBody{Error: res.Error, Code: res.Code})
	}
	return rejected(c, fe)
}

// bind decodes an optional JSON body into dst.
func bind(c echo.Context, dst any) contract.FieldErrors {
	if c.Request().ContentLength == 0 {
		return nil
	}
	if err := c.Echo().JSONSerializer.Deserialize(c, dst); err != nil {
		var fe contract.FieldErrors
		fe.Add("body", "Malformed JSON")
		return fe
	}
	return nil
}

func readBody(c echo.Context) ([]byte, error) {
	return io.ReadAll(io.LimitReader(c.Request().Body, maxBodySize))
}

// pathBoardID fills an empty body board id from the URL and rejects a
// conflicting one.
func pathBoardID(c echo.Context, bodyID *string, fe *contract.FieldErrors) {
	id := c.Param("boardId")
	switch {
	case *bodyID == "":
		*bodyID = id
	case *bodyID != id:
		fe.Add("boardId", "Board id does not match the URL")
	}
}

func listBoards(acts *app.Actions) echo.HandlerFunc {
	return func(c echo.Context) error {
		return run(c, acts.ListBoards, contract.ListBoardsInput{})
	}
}

func getBoard(acts *app.Actions) echo.HandlerFunc {
	return func(c echo.Context) error {
		return run(c, acts.GetBoard, contract.GetBoardInput{BoardID: c.Param("boardId")})
	}
}

func createBoard(acts *app.Actions) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in contract.CreateBoardInput
		if fe := bind(c, &in); fe != nil {
			return rejected(c, fe)
		}
		return run(c, acts.CreateBoard, in)
	}
}

func importBoard(acts *app.Actions) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in importer.Schema
		if fe := bind(c, &in); fe != nil {
			return rejected(c, fe)
		}
		return run(c, acts.ImportBoard, in)
	}
}

func updateBoard(acts *app.Actions) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in contract.UpdateBoardInput
		if fe := bind(c, &in); fe != nil {
			return rejected(c, fe)
		}
		in.BoardID = c.Param("boardId")
		return run(c, acts.UpdateBoard, in)
	}
}

func deleteBoard(acts *app.Actions) echo.HandlerFunc {
	return func(c echo.Context) error {
		return run(c, acts.DeleteBoard, contract.DeleteBoardInput{BoardID: c.Param("boardId")})
	}
}

func createList(acts *app.Actions) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in contract.CreateListInput
		if fe := bind(c, &in); fe != nil {
			return rejected(c, fe)
		}
		in.BoardID = c.Param("boardId")
		return run(c, acts.CreateList, in)
	}
}

func updateList(acts *app.Actions) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in contract.UpdateListInput
		if fe := bind(c, &in); fe != nil {
			return rejected(c, fe)
		}
		in.ListID = c.Param("listId")
		return run(c, acts.UpdateList, in)
	}
}

func deleteList(acts *app.Actions) echo.HandlerFunc {
	return func(c echo.Context) error {
		return run(c, acts.DeleteList, contract.DeleteListInput{ListID: c.Param("listId")})
	}
}

func createCard(acts *app.Actions) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in contract.CreateCardInput
		if fe := bind(c, &in); fe != nil {
			return rejected(c, fe)
		}
		in.ListID = c.Param("listId")
		return run(c, acts.CreateCard, in)
	}
}

func getCard(acts *app.Actions) echo.HandlerFunc {
	return func(c echo.Context) error {
		return run(c, acts.GetCard, contract.GetCardInput{CardID: c.Param("cardId")})
	}
}

func updateCard(acts *app.Actions) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in contract.UpdateCardInput
		if fe := bind(c, &in); fe != nil {
			return rejected(c, fe)
		}
		in.CardID = c.Param("cardId")
		return run(c, acts.UpdateCard, in)
	}
}

func deleteCard(acts *app.Actions) echo.HandlerFunc {
	return func(c echo.Context) error {
		return run(c, acts.DeleteCard, contract.DeleteCardInput{CardID: c.Param("cardId")})
	}
}

// Reorder bodies are decoded loosely so a bad order or id becomes a field
// error instead of a 400. Board access is checked before any field error
// is reported.
func reorderLists(acts *app.Actions) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := readBody(c)
		if err != nil {
			return err
		}
		in, fe := contract.DecodeReorderLists(body)
		if fe != nil {
			return rejectedForBoard(c, acts, fe)
		}
		pathBoardID(c, &in.BoardID, &fe)
		if fe != nil {
			return rejectedForBoard(c, acts, fe)
		}
		return run(c, acts.ReorderLists, in)
	}
}

func reorderCards(acts *app.Actions) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := readBody(c)
		if err != nil {
			return err
		}
		in, fe := contract.DecodeReorderCards(body)
		if fe != nil {
			return rejectedForBoard(c, acts, fe)
		}
		pathBoardID(c, &in.BoardID, &fe)
		if fe != nil {
			return rejectedForBoard(c, acts, fe)
		}
		return run(c, acts.ReorderCards, in)
	}
}
