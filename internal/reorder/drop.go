package reorder

import "github.com/alexanderramin/boardwalk/internal/contract"

// DragType tells the controller which level of the tree was dragged.
type DragType string

const (
	DragList DragType = "list"
	DragCard DragType = "card"
)

// ListsContainer is the container id of the board's horizontal list strip.
const ListsContainer = "lists"

// Location is a position inside a container. For card drags ContainerID is a
// list id; for list drags it is ListsContainer.
type Location struct {
	ContainerID string
	Index       int
}

// DropResult is the outcome of one drag gesture. Destination is nil when the
// item was released outside any valid target.
type DropResult struct {
	DraggableID string
	Type        DragType
	Source      Location
	Destination *Location
}

// Request is the durable write implied by a committed drop. Exactly one of
// Lists or Cards is set.
type Request struct {
	Lists *contract.ReorderListsInput
	Cards *contract.ReorderCardsInput
}
