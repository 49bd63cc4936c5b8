package protocol

import "strings"

// PrintJSONType discriminates the variants of a PrintJSON message.
type PrintJSONType string

const (
	PrintItemSend           PrintJSONType = "ItemSend"           // A player received an item
	PrintItemCheat          PrintJSONType = "ItemCheat"          // !getitem was used
	PrintHint               PrintJSONType = "Hint"               // A player hinted
	PrintJoin               PrintJSONType = "Join"               // A player connected
	PrintPart               PrintJSONType = "Part"               // A player disconnected
	PrintChat               PrintJSONType = "Chat"               // A player chatted
	PrintServerChat         PrintJSONType = "ServerChat"         // Server broadcast
	PrintTutorial           PrintJSONType = "Tutorial"           // Tutorial message
	PrintTagsChanged        PrintJSONType = "TagsChanged"        // A player changed tags
	PrintCommandResult      PrintJSONType = "CommandResult"      // ! command result
	PrintAdminCommandResult PrintJSONType = "AdminCommandResult" // !admin command result
	PrintGoal               PrintJSONType = "Goal"               // A player reached their goal
	PrintRelease            PrintJSONType = "Release"            // A player released their items
	PrintCollect            PrintJSONType = "Collect"            // A player collected their items
	PrintCountdown          PrintJSONType = "Countdown"          // Server countdown progressed
)

// PrintJSON is a textual server event. Which of the optional fields are
// present depends on Type; Data is always present and is sufficient on its
// own to render the message.
type PrintJSON struct {
	Type PrintJSONType `json:"type,omitempty"`

	// Data is the message broken into render parts.
	Data []JSONMessagePart `json:"data"`

	// Receiving and Item accompany ItemSend, ItemCheat and Hint.
	Receiving *int64       `json:"receiving,omitempty"`
	Item      *NetworkItem `json:"item,omitempty"`

	// Found accompanies Hint.
	Found *bool `json:"found,omitempty"`

	// Team and Slot accompany the player-scoped variants.
	Team *int64 `json:"team,omitempty"`
	Slot *int64 `json:"slot,omitempty"`

	// Message accompanies Chat and ServerChat.
	Message string `json:"message,omitempty"`

	// Tags accompanies Join and TagsChanged.
	Tags []string `json:"tags,omitempty"`

	// Countdown accompanies Countdown.
	Countdown *int64 `json:"countdown,omitempty"`
}

func (*PrintJSON) Cmd() string    { return "PrintJSON" }
func (*PrintJSON) serverMessage() {}

// Text flattens the message parts into plain text, dropping all markup.
func (p *PrintJSON) Text() string {
	var b strings.Builder
	for _, part := range p.Data {
		b.WriteString(part.Text)
	}
	return b.String()
}

// JSONMessagePartType discriminates the variants of a message part. A part
// with no type at all is plain text.
type JSONMessagePartType string

const (
	PartPlayerID     JSONMessagePartType = "player_id"
	PartPlayerName   JSONMessagePartType = "player_name"
	PartItemID       JSONMessagePartType = "item_id"
	PartItemName     JSONMessagePartType = "item_name"
	PartLocationID   JSONMessagePartType = "location_id"
	PartLocationName JSONMessagePartType = "location_name"
	PartEntranceName JSONMessagePartType = "entrance_name"
	PartColor        JSONMessagePartType = "color"
)

// JSONMessagePart is one fragment of a PrintJSON message. Text is always
// present; the other fields depend on Type.
type JSONMessagePart struct {
	Type JSONMessagePartType `json:"type,omitempty"`
	Text string              `json:"text"`

	// Player accompanies the id/name part types that are scoped to a
	// player's world.
	Player *int64 `json:"player,omitempty"`

	// Flags accompanies item parts.
	Flags *NetworkItemFlags `json:"flags,omitempty"`

	// Color accompanies color parts.
	Color JSONColor `json:"color,omitempty"`
}

// JSONColor names a rendering color or style for a color message part.
type JSONColor string

const (
	ColorBold      JSONColor = "bold"
	ColorUnderline JSONColor = "underline"
	ColorBlack     JSONColor = "black"
	ColorRed       JSONColor = "red"
	ColorGreen     JSONColor = "green"
	ColorYellow    JSONColor = "yellow"
	ColorBlue      JSONColor = "blue"
	ColorMagenta   JSONColor = "magenta"
	ColorCyan      JSONColor = "cyan"
	ColorWhite     JSONColor = "white"
	ColorBlackBg   JSONColor = "black_bg"
	ColorRedBg     JSONColor = "red_bg"
	ColorGreenBg   JSONColor = "green_bg"
	ColorYellowBg  JSONColor = "yellow_bg"
	ColorBlueBg    JSONColor = "blue_bg"
	ColorMagentaBg JSONColor = "magenta_bg"
	ColorCyanBg    JSONColor = "cyan_bg"
	ColorWhiteBg   JSONColor = "white_bg"
)
