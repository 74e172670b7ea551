package httpapi

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
)

// sonicSerializer replaces echo's encoding/json serializer.
type sonicSerializer struct{}

func (sonicSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	var (
		b   []byte
		err error
	)
	if indent != "" {
		b, err = sonic.ConfigStd.MarshalIndent(i, "", indent)
	} else {
		b, err = sonic.Marshal(i)
	}
	if err != nil {
		return err
	}
	_, err = c.Response().Write(b)
	return err
}

func (sonicSerializer) Deserialize(c echo.Context, i interface{}) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodySize))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "reading body").SetInternal(err)
	}
	if err := sonic.Unmarshal(body, i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed JSON").SetInternal(err)
	}
	return nil
}
