package app

import (
	"errors"
	"strings"
	"sync"
)

type Action int

const (
	ActionNone Action = iota
	ActionKdv
	ActionSatis
)

func (a Action) String() string {
	switch a {
	case ActionKdv:
		return "kdv"
	case ActionSatis:
		return "satis"
	}
	return "none"
}

var (
	ErrNoAction    = errors.New("no report action pending")
	ErrVknRequired = errors.New("vkn is required for the sales list")
)

// ModalState is either Closed or AwaitingInput.
type ModalState interface {
	modalState()
}

type Closed struct{}

type AwaitingInput struct {
	Action Action
}

func (Closed) modalState()        {}
func (AwaitingInput) modalState() {}

// Prompt is the copy shown by the VKN dialog.
type Prompt struct {
	Title       string
	Description string
	Required    bool
}

// Submission is an accepted dialog result, captured before the modal closed.
type Submission struct {
	Action Action
	Vkn    string
}

var prompts = map[Action]Prompt{
	ActionKdv: {
		Title:       "Mükellef VKN (Opsiyonel)",
		Description: "Satış faturalarını hariç tutmak için kendi VKN/TCKN'nizi girin:",
	},
	ActionSatis: {
		Title:       "Mükellef VKN (Zorunlu)",
		Description: "Satış faturalarınızı bulmak için kendi VKN/TCKN'nizi girin:",
		Required:    true,
	},
}

// Dispatcher owns the VKN dialog state.
type Dispatcher struct {
	mu    sync.Mutex
	state ModalState
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{state: Closed{}}
}

func (d *Dispatcher) State() ModalState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Pending returns the action awaiting input, or ActionNone.
func (d *Dispatcher) Pending() Action {
	if awaiting, ok := d.State().(AwaitingInput); ok {
		return awaiting.Action
	}
	return ActionNone
}

// Open moves to AwaitingInput(action), replacing any pending action.
func (d *Dispatcher) Open(action Action) (Prompt, error) {
	prompt, ok := prompts[action]
	if !ok {
		return Prompt{}, ErrNoAction
	}
	d.mu.Lock()
	d.state = AwaitingInput{Action: action}
	d.mu.Unlock()
	return prompt, nil
}

// Submit validates input against the pending action. A missing mandatory
// VKN keeps the dialog open; anything else closes it.
func (d *Dispatcher) Submit(input string) (Submission, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	awaiting, ok := d.state.(AwaitingInput)
	if !ok {
		return Submission{}, ErrNoAction
	}
	vkn := strings.TrimSpace(input)
	if awaiting.Action == ActionSatis && vkn == "" {
		return Submission{}, ErrVknRequired
	}
	d.state = Closed{}
	return Submission{Action: awaiting.Action, Vkn: vkn}, nil
}

func (d *Dispatcher) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = Closed{}
}
