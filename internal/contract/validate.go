package contract

import (
	"fmt"
	"strings"
)

const (
	MinTitleLen       = 3
	MinDescriptionLen = 5
)

// ValidateReorderLists checks a list reorder request. A nil result means the
// input is valid.
func ValidateReorderLists(in ReorderListsInput) FieldErrors {
	var fe FieldErrors

	if strings.TrimSpace(in.BoardID) == "" {
		fe.Add("boardId", "Board id is required")
	}
	if len(in.Items) == 0 {
		fe.Add("items", "At least one item is required")
		return fe
	}

	seenID := map[string]bool{}
	seenOrder := map[int]bool{}
	for i, it := range in.Items {
		prefix := fmt.Sprintf("items.%d", i)
		validateItemID(&fe, prefix, it.ID, seenID)
		validateItemOrder(&fe, prefix, it.Order, seenOrder)

		switch {
		case strings.TrimSpace(it.BoardID) == "":
			fe.Add(prefix+".boardId", "Board id is required")
		case in.BoardID != "" && it.BoardID != in.BoardID:
			fe.Add(prefix+".boardId", "List must belong to the requested board")
		}
	}
	return fe
}

// ValidateReorderCards checks a card reorder request. Orders must be unique
// within each list, not across the whole request.
func ValidateReorderCards(in ReorderCardsInput) FieldErrors {
	var fe FieldErrors

	if strings.TrimSpace(in.BoardID) == "" {
		fe.Add("boardId", "Board id is required")
	}
	if len(in.Items) == 0 {
		fe.Add("items", "At least one item is required")
		return fe
	}

	seenID := map[string]bool{}
	seenOrder := map[string]map[int]bool{}
	for i, it := range in.Items {
		prefix := fmt.Sprintf("items.%d", i)
		validateItemID(&fe, prefix, it.ID, seenID)

		if strings.TrimSpace(it.ListID) == "" {
			fe.Add(prefix+".listId", "List id is required")
		}
		if seenOrder[it.ListID] == nil {
			seenOrder[it.ListID] = map[int]bool{}
		}
		validateItemOrder(&fe, prefix, it.Order, seenOrder[it.ListID])

		if it.BoardID != "" && in.BoardID != "" && it.BoardID != in.BoardID {
			fe.Add(prefix+".boardId", "Card must belong to the requested board")
		}
	}
	return fe
}

func validateItemID(fe *FieldErrors, prefix, id string, seen map[string]bool) {
	if strings.TrimSpace(id) == "" {
		fe.Add(prefix+".id", "Id is required")
		return
	}
	if seen[id] {
		fe.Add(prefix+".id", "Duplicate id")
	}
	seen[id] = true
}

func validateItemOrder(fe *FieldErrors, prefix string, order *int, seen map[int]bool) {
	if order == nil {
		fe.Add(prefix+".order", "Order is required")
		return
	}
	if *order < 0 {
		fe.Add(prefix+".order", "Order must be zero or greater")
		return
	}
	if seen[*order] {
		fe.Add(prefix+".order", "Duplicate order")
	}
	seen[*order] = true
}

func validateTitle(fe *FieldErrors, key, title string) {
	t := strings.TrimSpace(title)
	if t == "" {
		fe.Add(key, "Title is required")
		return
	}
	if len([]rune(t)) < MinTitleLen {
		fe.Add(key, "Title is too short")
	}
}

func validateRequired(fe *FieldErrors, key, value, msg string) {
	if strings.TrimSpace(value) == "" {
		fe.Add(key, msg)
	}
}

func ValidateListBoards(ListBoardsInput) FieldErrors { return nil }

func ValidateGetBoard(in GetBoardInput) FieldErrors {
	var fe FieldErrors
	validateRequired(&fe, "boardId", in.BoardID, "Board id is required")
	return fe
}

func ValidateCreateBoard(in CreateBoardInput) FieldErrors {
	var fe FieldErrors
	validateTitle(&fe, "title", in.Title)
	return fe
}

func ValidateUpdateBoard(in UpdateBoardInput) FieldErrors {
	var fe FieldErrors
	validateRequired(&fe, "boardId", in.BoardID, "Board id is required")
	validateTitle(&fe, "title", in.Title)
	return fe
}

func ValidateDeleteBoard(in DeleteBoardInput) FieldErrors {
	var fe FieldErrors
	validateRequired(&fe, "boardId", in.BoardID, "Board id is required")
	return fe
}

func ValidateCreateList(in CreateListInput) FieldErrors {
	var fe FieldErrors
	validateRequired(&fe, "boardId", in.BoardID, "Board id is required")
	validateTitle(&fe, "title", in.Title)
	return fe
}

func ValidateUpdateList(in UpdateListInput) FieldErrors {
	var fe FieldErrors
	validateRequired(&fe, "listId", in.ListID, "List id is required")
	validateTitle(&fe, "title", in.Title)
	return fe
}

func ValidateDeleteList(in DeleteListInput) FieldErrors {
	var fe FieldErrors
	validateRequired(&fe, "listId", in.ListID, "List id is required")
	return fe
}

func ValidateCreateCard(in CreateCardInput) FieldErrors {
	var fe FieldErrors
	validateRequired(&fe, "listId", in.ListID, "List id is required")
	validateTitle(&fe, "title", in.Title)
	validateDescription(&fe, in.Description)
	return fe
}

func ValidateUpdateCard(in UpdateCardInput) FieldErrors {
	var fe FieldErrors
	validateRequired(&fe, "cardId", in.CardID, "Card id is required")
	if in.Title == nil && in.Description == nil {
		fe.Add("title", "Nothing to update")
		return fe
	}
	if in.Title != nil {
		validateTitle(&fe, "title", *in.Title)
	}
	validateDescription(&fe, in.Description)
	return fe
}

func ValidateDeleteCard(in DeleteCardInput) FieldErrors {
	var fe FieldErrors
	validateRequired(&fe, "cardId", in.CardID, "Card id is required")
	return fe
}

func ValidateGetCard(in GetCardInput) FieldErrors {
	var fe FieldErrors
	validateRequired(&fe, "cardId", in.CardID, "Card id is required")
	return fe
}

func ValidateAddMember(in AddMemberInput) FieldErrors {
	var fe FieldErrors
	validateRequired(&fe, "orgId", in.OrgID, "Organization id is required")
	validateRequired(&fe, "userId", in.UserID, "User id is required")
	return fe
}

func validateDescription(fe *FieldErrors, desc *string) {
	if desc == nil {
		return
	}
	d := strings.TrimSpace(*desc)
	if d == "" {
		fe.Add("description", "Description is required")
		return
	}
	if len([]rune(d)) < MinDescriptionLen {
		fe.Add("description", "Description is too short")
	}
}
