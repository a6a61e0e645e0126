package surface

import "sync"

// BlockKind identifies the content of a Block
type BlockKind int

const (
	BlockText BlockKind = iota
	BlockTable
	BlockFields
	BlockActions
	BlockForm
)

// Block is one drawn element, in drawing order
type Block struct {
	Kind    BlockKind
	Text    string
	Table   *Table
	Fields  []Field
	Actions []Action
	Form    *Form
}

// Frame is a consistent copy of the buffer contents
type Frame struct {
	Version       uint64
	Title         string
	Blocks        []Block
	Loading       bool
	LoadingLabel  string
	Notifications []Notification
}

// LastNotification returns the most recent notification
func (f Frame) LastNotification() (Notification, bool) {
	if len(f.Notifications) == 0 {
		return Notification{}, false
	}
	return f.Notifications[len(f.Notifications)-1], true
}

// Actions returns every action of the frame in drawing order
func (f Frame) Actions() []Action {
	var out []Action
	for _, b := range f.Blocks {
		out = append(out, b.Actions...)
	}
	return out
}

// Tables returns every table of the frame in drawing order
func (f Frame) Tables() []*Table {
	var out []*Table
	for _, b := range f.Blocks {
		if b.Table != nil {
			out = append(out, b.Table)
		}
	}
	return out
}

// Forms returns every form of the frame in drawing order
func (f Frame) Forms() []*Form {
	var out []*Form
	for _, b := range f.Blocks {
		if b.Form != nil {
			out = append(out, b.Form)
		}
	}
	return out
}

const maxNotifications = 50

// Buffer is a Surface that records what was drawn. Reads and writes may
// happen on different goroutines.
type Buffer struct {
	mu            sync.RWMutex
	version       uint64
	title         string
	blocks        []Block
	loading       int
	loadingLabel  string
	notifications []Notification
}

// NewBuffer creates an empty buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Notify records a notification
func (b *Buffer) Notify(level Level, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notifications = append(b.notifications, Notification{Level: level, Message: message})
	if len(b.notifications) > maxNotifications {
		b.notifications = b.notifications[len(b.notifications)-maxNotifications:]
	}
	b.version++
}

// Reset drops every block and sets the title. Notifications survive.
func (b *Buffer) Reset(title string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.title = title
	b.blocks = nil
	b.version++
}

// Text appends a paragraph
func (b *Buffer) Text(text string) {
	b.add(Block{Kind: BlockText, Text: text})
}

// Table appends a table
func (b *Buffer) Table(table Table) {
	b.add(Block{Kind: BlockTable, Table: &table})
}

// Fields appends a key/value block
func (b *Buffer) Fields(fields ...Field) {
	b.add(Block{Kind: BlockFields, Fields: fields})
}

// Actions appends an action bar
func (b *Buffer) Actions(actions ...Action) {
	b.add(Block{Kind: BlockActions, Actions: actions})
}

// Form appends a form
func (b *Buffer) Form(form Form) {
	b.add(Block{Kind: BlockForm, Form: &form})
}

// ShowLoading marks the buffer busy with label. Calls nest.
func (b *Buffer) ShowLoading(label string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading++
	b.loadingLabel = label
	b.version++
}

// HideLoading undoes one ShowLoading. Extra calls are ignored.
func (b *Buffer) HideLoading() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loading == 0 {
		return
	}
	b.loading--
	if b.loading == 0 {
		b.loadingLabel = ""
	}
	b.version++
}

// Snapshot returns a copy of the current contents
func (b *Buffer) Snapshot() Frame {
	b.mu.RLock()
	defer b.mu.RUnlock()

	blocks := make([]Block, len(b.blocks))
	copy(blocks, b.blocks)
	notes := make([]Notification, len(b.notifications))
	copy(notes, b.notifications)

	return Frame{
		Version:       b.version,
		Title:         b.title,
		Blocks:        blocks,
		Loading:       b.loading > 0,
		LoadingLabel:  b.loadingLabel,
		Notifications: notes,
	}
}

func (b *Buffer) add(block Block) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blocks = append(b.blocks, block)
	b.version++
}
