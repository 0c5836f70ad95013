package notepad

// Notices shown to the user. They are transient and never block.
const (
	NoticeSelectToDelete = "Select a note to delete"
	NoticeFillAllFields  = "Fill in all fields"
	NoticeSaved          = "Note saved"
	NoticeDeleted        = "Note deleted"
	NoticeNoSuchNote     = "No note at that position"
	NoticeNoteGone       = "That note no longer exists"
)

// Notifier shows transient notices.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notify calls f(msg).
func (f NotifierFunc) Notify(msg string) { f(msg) }
