package dialog

// Input is one inbound event: either free text or a discrete selection from
// an inline keyboard. Exactly one of the two is set.
type Input struct {
	Text      string
	Selection string
}

func TextInput(s string) Input      { return Input{Text: s} }
func SelectionInput(tag string) Input { return Input{Selection: tag} }

func (in Input) isSelection() bool { return in.Selection != "" }

// Button is one inline-keyboard button the transport should render.
type Button struct {
	Label string
	Data  string
}

// Message is one outbound send. When PhotoURL is set the text is its
// caption; when FilePath is set the message attaches that file.
type Message struct {
	Text     string
	Markdown bool
	Buttons  [][]Button
	PhotoURL string
	FilePath string
}

// Reply is everything a single Advance produced, in send order.
type Reply struct {
	Messages []Message
	ShowMenu bool
}

func textMsg(text string) Message     { return Message{Text: text} }
func markdownMsg(text string) Message { return Message{Text: text, Markdown: true} }

func reply(msgs ...Message) Reply { return Reply{Messages: msgs} }

func (r Reply) withMenu() Reply {
	r.ShowMenu = true
	return r
}
