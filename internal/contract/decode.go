package contract

import (
	"fmt"
	"math"

	"github.com/bytedance/sonic"
)

// DecodeReorderLists parses a list reorder body. Values of the wrong JSON type
// are reported as field errors at their path rather than failing the decode.
func DecodeReorderLists(body []byte) (ReorderListsInput, FieldErrors) {
	var in ReorderListsInput
	root, items, fe := decodeReorderRoot(body)
	if root == nil {
		return in, fe
	}
	in.BoardID = stringField(&fe, root, "boardId", "boardId")
	for i, m := range items {
		prefix := fmt.Sprintf("items.%d", i)
		in.Items = append(in.Items, ListOrderItem{
			ID:      stringField(&fe, m, "id", prefix+".id"),
			Order:   orderField(&fe, m, prefix+".order"),
			BoardID: stringField(&fe, m, "boardId", prefix+".boardId"),
			Title:   stringField(&fe, m, "title", prefix+".title"),
		})
	}
	return in, fe
}

// DecodeReorderCards parses a card reorder body.
func DecodeReorderCards(body []byte) (ReorderCardsInput, FieldErrors) {
	var in ReorderCardsInput
	root, items, fe := decodeReorderRoot(body)
	if root == nil {
		return in, fe
	}
	in.BoardID = stringField(&fe, root, "boardId", "boardId")
	for i, m := range items {
		prefix := fmt.Sprintf("items.%d", i)
		in.Items = append(in.Items, CardOrderItem{
			ID:      stringField(&fe, m, "id", prefix+".id"),
			Order:   orderField(&fe, m, prefix+".order"),
			ListID:  stringField(&fe, m, "listId", prefix+".listId"),
			BoardID: stringField(&fe, m, "boardId", prefix+".boardId"),
			Title:   stringField(&fe, m, "title", prefix+".title"),
		})
	}
	return in, fe
}

func decodeReorderRoot(body []byte) (map[string]any, []map[string]any, FieldErrors) {
	var fe FieldErrors
	var raw any
	if err := sonic.Unmarshal(body, &raw); err != nil {
		fe.Add("body", "Malformed JSON")
		return nil, nil, fe
	}
	root, ok := raw.(map[string]any)
	if !ok {
		fe.Add("body", "Expected a JSON object")
		return nil, nil, fe
	}

	rawItems, present := root["items"]
	if !present || rawItems == nil {
		return root, nil, fe
	}
	list, ok := rawItems.([]any)
	if !ok {
		fe.Add("items", "Items must be an array")
		return root, nil, fe
	}
	items := make([]map[string]any, len(list))
	for i, v := range list {
		m, ok := v.(map[string]any)
		if !ok {
			fe.Add(fmt.Sprintf("items.%d", i), "Item must be an object")
			m = map[string]any{}
		}
		items[i] = m
	}
	return root, items, fe
}

func stringField(fe *FieldErrors, m map[string]any, key, path string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		fe.Add(path, "Must be a string")
		return ""
	}
	return s
}

// orderField returns nil when the order is missing or not an integer; in the
// second case a field error is recorded.
func orderField(fe *FieldErrors, m map[string]any, path string) *int {
	v, ok := m["order"]
	if !ok || v == nil {
		return nil
	}
	f, ok := v.(float64)
	if !ok || math.Trunc(f) != f || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		fe.Add(path, "Order must be an integer")
		return nil
	}
	return IntPtr(int(f))
}
