package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"tcg-pocket-engine/internal/adapter"
	httpdto "tcg-pocket-engine/internal/delivery/http"
	wsdto "tcg-pocket-engine/internal/delivery/websocket"
	"tcg-pocket-engine/internal/engine/card"
)

const (
	defaultServerAddr = "localhost:8080"

	cliVersion = "1.0.0"
	cliName    = "TCG Pocket Engine CLI"
)

// stepOutcomePayload mirrors the unexported payload the server marshals a
// turn.StepOutcome into; decoded locally so the CLI doesn't need to reach
// into the delivery package's private types.
type stepOutcomePayload struct {
	Kind   string `json:"kind"`
	Winner *int   `json:"winner,omitempty"`
	Error  string `json:"error,omitempty"`
}

// CLIClient drives one game over the websocket self-play surface, the way
// a human stands in for a policy during manual testing.
type CLIClient struct {
	conn     *websocket.Conn
	httpBase string

	gameID string
	player int

	done   chan struct{}
	closed bool

	ui  *UI
	obs *adapter.Observation
}

func main() {
	fmt.Printf("%s v%s\n", cliName, cliVersion)
	fmt.Println("Interactive driver for the TCG Pocket engine")
	fmt.Println("Type 'help' for available commands or 'quit' to exit")
	fmt.Println()

	serverAddr := defaultServerAddr
	if len(os.Args) > 1 {
		serverAddr = os.Args[1]
	}

	client := &CLIClient{
		httpBase: "http://" + serverAddr + "/api/v1",
		done:     make(chan struct{}),
		ui:       NewUI(),
	}

	if err := client.connect(serverAddr); err != nil {
		log.Fatalf("failed to connect to server: %v", err)
	}
	defer client.conn.Close()

	fmt.Printf("connected to server at %s\n\n", serverAddr)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	winResize := make(chan os.Signal, 1)
	signal.Notify(winResize, syscall.SIGWINCH)

	go client.readMessages()

	go func() {
		<-interrupt
		fmt.Println("\nshutting down...")
		if !client.closed {
			client.closed = true
			close(client.done)
		}
		client.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		time.Sleep(200 * time.Millisecond)
		os.Exit(0)
	}()

	go func() {
		for {
			select {
			case <-winResize:
				client.refreshDisplay()
			case <-client.done:
				return
			}
		}
	}()

	client.commandLoop()
}

func (c *CLIClient) connect(serverAddr string) error {
	u := url.URL{Scheme: "ws", Host: serverAddr, Path: "/ws"}
	var err error
	c.conn, _, err = websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial error: %w", err)
	}
	return nil
}

func (c *CLIClient) readMessages() {
	for {
		select {
		case <-c.done:
			return
		default:
			var msg wsdto.WebSocketMessage
			if err := c.conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					fmt.Printf("websocket error: %v\n", err)
				}
				if !c.closed {
					c.closed = true
					close(c.done)
				}
				return
			}
			c.handleMessage(msg)
		}
	}
}

func (c *CLIClient) handleMessage(msg wsdto.WebSocketMessage) {
	switch msg.Type {
	case wsdto.MessageTypeObservation:
		if obs, ok := decodeInto[adapter.Observation](msg.Payload); ok {
			c.obs = &obs
			c.ui.UpdateObservation(c.obs)
		}
		c.refreshDisplay()

	case wsdto.MessageTypeStepOutcome:
		if outcome, ok := decodeInto[stepOutcomePayload](msg.Payload); ok {
			c.ui.SetLastCommand(c.ui.lastCommand, renderOutcome(outcome))
		}
		c.refreshDisplay()

	case wsdto.MessageTypeError:
		if payload, ok := decodeInto[wsdto.ErrorPayload](msg.Payload); ok {
			c.ui.SetLastCommand(c.ui.lastCommand, c.ui.RenderMessage("error", payload.Message))
		}
		c.refreshDisplay()
	}
}

func renderOutcome(o stepOutcomePayload) string {
	switch o.Kind {
	case "game_over":
		winner := -1
		if o.Winner != nil {
			winner = *o.Winner
		}
		return fmt.Sprintf("game over — player %d wins", winner)
	case "invalid_action":
		return fmt.Sprintf("invalid action: %s", o.Error)
	default:
		return "ok"
	}
}

// decodeInto re-marshals a generically-typed payload (as produced by
// json.Unmarshal into an interface{} field) into T.
func decodeInto[T any](raw interface{}) (T, bool) {
	var out T
	b, err := json.Marshal(raw)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, false
	}
	return out, true
}

func (c *CLIClient) commandLoop() {
	reader := bufio.NewReader(os.Stdin)
	c.refreshDisplay()

	for {
		select {
		case <-c.done:
			return
		default:
		}

		fmt.Print(c.ui.RenderPrompt())

		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		command := strings.TrimSpace(line)
		if command == "" {
			continue
		}

		if c.processCommand(command) {
			return
		}
	}
}

func (c *CLIClient) processCommand(command string) bool {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return false
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "h":
		c.showHelp()

	case "quit", "exit", "q":
		fmt.Println("goodbye")
		if !c.closed {
			c.closed = true
			close(c.done)
		}
		return true

	case "status", "s":
		c.ui.SetLastCommand(cmd, c.ui.RenderStatus())
		c.refreshDisplay()

	case "new":
		c.createAndJoinGame(args)

	case "join", "j":
		c.joinExistingGame(args)

	case "actions":
		c.fetchLegalActions()

	case "mask":
		c.fetchActionMask()

	case "clear", "cls":
		c.ui.ClearCommandOutput()
		c.refreshDisplay()

	case "do", "a":
		c.doActionCommand(args)

	default:
		if len(cmd) > 0 && cmd[0] >= '0' && cmd[0] <= '9' {
			c.doActionCommand(parts)
		} else {
			c.displayResult(cmd, fmt.Sprintf("unknown command: %s (type 'help')", cmd))
		}
	}

	return false
}

func (c *CLIClient) displayResult(cmd, result string) {
	c.ui.SetLastCommand(cmd, result)
	c.refreshDisplay()
}

func (c *CLIClient) refreshDisplay() {
	c.ui.ClearScreen()
	fmt.Println(c.ui.RenderFullDisplay())
}

func (c *CLIClient) showHelp() {
	help := `Available commands:
  help, h              - show this help
  quit, exit, q        - exit the CLI
  status, s            - show observation summary
  new                  - create a two-default-deck game and join as player 0
  join <id> <player>   - join an existing game by ID as 0 or 1
  actions              - list legal action indices
  mask                 - show action-mask popcount
  do <index>, a <idx>  - apply one action by index (or just type the number)
  clear, cls           - clear command output`
	c.displayResult("help", help)
}

func (c *CLIClient) createAndJoinGame(args []string) {
	deck := defaultDeck()
	req := httpdto.CreateGameRequest{Deck1: deck.Cards, Deck2: deck.Cards}

	body, err := json.Marshal(req)
	if err != nil {
		c.displayResult("new", fmt.Sprintf("encode error: %v", err))
		return
	}

	resp, err := http.Post(c.httpBase+"/games", "application/json", bytes.NewReader(body))
	if err != nil {
		c.displayResult("new", fmt.Sprintf("request error: %v", err))
		return
	}
	defer resp.Body.Close()

	var created httpdto.CreateGameResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		c.displayResult("new", fmt.Sprintf("decode error: %v", err))
		return
	}

	c.gameID = created.GameID
	c.player = 0
	c.sendJoinGame(c.gameID, 0)
	c.displayResult("new", fmt.Sprintf("created game %s, joined as player 0", c.gameID))
}

func (c *CLIClient) joinExistingGame(args []string) {
	if len(args) < 2 {
		c.displayResult("join", "usage: join <gameId> <player>")
		return
	}
	player, err := strconv.Atoi(args[1])
	if err != nil || (player != 0 && player != 1) {
		c.displayResult("join", "player must be 0 or 1")
		return
	}

	c.gameID = args[0]
	c.player = player
	c.sendJoinGame(c.gameID, player)
	c.displayResult("join", fmt.Sprintf("joined game %s as player %d", c.gameID, player))
}

func (c *CLIClient) sendJoinGame(gameID string, player int) {
	c.conn.WriteJSON(wsdto.WebSocketMessage{
		Type:   wsdto.MessageTypeJoinGame,
		GameID: gameID,
		Payload: wsdto.JoinGamePayload{
			GameID: gameID,
			Player: player,
		},
	})
}

func (c *CLIClient) doActionCommand(args []string) {
	if len(args) == 0 {
		c.displayResult("do", "usage: do <index>")
		return
	}
	if c.gameID == "" {
		c.displayResult("do", "join a game first ('new' or 'join')")
		return
	}

	idx, err := strconv.Atoi(args[0])
	if err != nil {
		c.displayResult("do", fmt.Sprintf("not a valid index: %s", args[0]))
		return
	}

	c.conn.WriteJSON(wsdto.WebSocketMessage{
		Type:   wsdto.MessageTypeDoAction,
		GameID: c.gameID,
		Payload: wsdto.DoActionPayload{
			Index: idx,
		},
	})
	c.displayResult("do", fmt.Sprintf("sent action %d", idx))
}

func (c *CLIClient) fetchLegalActions() {
	if c.gameID == "" {
		c.displayResult("actions", "join a game first")
		return
	}
	resp, err := http.Get(c.httpBase + "/games/" + c.gameID + "/actions")
	if err != nil {
		c.displayResult("actions", fmt.Sprintf("request error: %v", err))
		return
	}
	defer resp.Body.Close()

	var out httpdto.LegalActionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.displayResult("actions", fmt.Sprintf("decode error: %v", err))
		return
	}
	c.displayResult("actions", fmt.Sprintf("%d legal: %v", len(out.Indices), out.Indices))
}

func (c *CLIClient) fetchActionMask() {
	if c.gameID == "" {
		c.displayResult("mask", "join a game first")
		return
	}
	resp, err := http.Get(c.httpBase + "/games/" + c.gameID + "/action-mask")
	if err != nil {
		c.displayResult("mask", fmt.Sprintf("request error: %v", err))
		return
	}
	defer resp.Body.Close()

	var out httpdto.ActionMaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.displayResult("mask", fmt.Sprintf("decode error: %v", err))
		return
	}
	on := 0
	for _, v := range out.Mask {
		if v {
			on++
		}
	}
	c.displayResult("mask", fmt.Sprintf("%d/%d legal", on, adapter.ActionSpaceSize))
}

// defaultDeck builds a trivially valid 20-card deck (10 distinct Basic
// Pokémon, 2 copies each — card.Deck.Validate caps copies at 2) so the
// CLI can start a game without a card database loader — good enough to
// exercise setup, attach/attack, retreat and knockout flow.
func defaultDeck() card.Deck {
	cards := make([]card.Card, 0, 20)
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("Training Dummy %d", i)
		for n := 0; n < 2; n++ {
			cards = append(cards, card.Card{
				ID:          name,
				Name:        name,
				Category:    card.CategoryPokemon,
				StagePok:    card.Basic,
				HP:          60,
				RetreatCost: 1,
				Attacks: []card.Attack{
					{Name: "Tackle", EnergyCost: []card.EnergyType{card.Colorless}, Damage: 10},
				},
			})
		}
	}
	return card.NewUnchecked(cards)
}
