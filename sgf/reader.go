package sgf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Zdifah/Game-Othello/engine"
	"github.com/Zdifah/Game-Othello/match"
	"github.com/Zdifah/Game-Othello/player"
)

// GameInfo holds metadata parsed from an SGF file header.
type GameInfo struct {
	FilePath    string
	FileName    string
	BoardSize   int
	PlayerBlack string
	PlayerWhite string
	FirstTurn   engine.Disc
	Date        string
	Result      string
	MoveCount   int
}

// Move is one move node of a record.
type Move struct {
	Disc engine.Disc
	Pos  engine.Position
	Pass bool
}

// ParseHeader reads an SGF file and extracts metadata from the root node.
func ParseHeader(filePath string) (*GameInfo, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	info, err := parseHeader(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	info.FilePath = filePath
	info.FileName = filepath.Base(filePath)
	return info, nil
}

func parseHeader(content string) (*GameInfo, error) {
	props := parseProperties(content)

	if gm, ok := props["GM"]; ok && gm != strconv.Itoa(gameType) {
		return nil, fmt.Errorf("not an Othello record (GM[%s])", gm)
	}

	boardSize := engine.DefaultSize
	if v, ok := props["SZ"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			boardSize = n
		}
	}

	first := engine.Black
	if v, ok := props["PL"]; ok {
		if d, err := engine.ParseDisc(v); err == nil {
			first = d
		}
	} else if moves := parseMoves(content); len(moves) > 0 {
		first = moves[0].Disc
	}

	result := props["RE"]
	if !isValidSGFResult(result) {
		result = "?"
	}

	return &GameInfo{
		BoardSize:   boardSize,
		PlayerBlack: props["PB"],
		PlayerWhite: props["PW"],
		FirstTurn:   first,
		Date:        props["DT"],
		Result:      result,
		MoveCount:   countMoves(content),
	}, nil
}

// ParseMoves returns the move and pass nodes of a record in order.
func ParseMoves(filePath string) ([]Move, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return parseMoves(string(data)), nil
}

func parseMoves(content string) []Move {
	var moves []Move
	for _, node := range parseNodes(content) {
		if m, ok := parseMoveNode(node); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

// ReplayToEnd replays a record through a fresh game and returns it in its
// final position together with the number of move nodes read. Passes the
// engine does not force and moves out of turn are reported as errors.
func ReplayToEnd(filePath string) (*engine.Game, int, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, 0, err
	}
	content := string(data)
	info, err := parseHeader(content)
	if err != nil {
		return nil, 0, err
	}

	g, err := startingPosition(content, info.BoardSize)
	if err != nil {
		return nil, 0, err
	}
	c := match.New(g, player.WithID("black", info.PlayerBlack), player.WithID("white", info.PlayerWhite), info.FirstTurn)
	defer c.Close()
	if err := c.Start(); err != nil {
		return nil, 0, err
	}

	moveCount := 0
	for _, m := range parseMoves(content) {
		moveCount++
		if m.Pass {
			continue // applied by the controller
		}
		if d := g.CurrentDisc(); d != m.Disc {
			return g, moveCount, fmt.Errorf("move %d: %s to play, record has %s", moveCount, d, m.Disc)
		}
		if err := c.Play(m.Pos); err != nil {
			return g, moveCount, fmt.Errorf("move %d: %w", moveCount, err)
		}
	}

	return g, moveCount, nil
}

// startingPosition builds the game a record starts from: its AB/AW setup if
// it has one, the standard centre opening otherwise.
func startingPosition(content string, size int) (*engine.Game, error) {
	blacks, whites := parseSetup(content)
	if len(blacks) == 0 && len(whites) == 0 {
		return match.NewGame(size)
	}
	g := engine.New()
	if !g.SetBoardSize(size) {
		return nil, fmt.Errorf("invalid board size %d", size)
	}
	for _, p := range blacks {
		g.PlaceDisc(engine.Black, p)
	}
	for _, p := range whites {
		g.PlaceDisc(engine.White, p)
	}
	return g, nil
}

// parseProperties extracts KEY[value] pairs from the root node of an SGF string.
func parseProperties(content string) map[string]string {
	props := make(map[string]string)

	// Find the root node: starts after "(;"
	start := strings.Index(content, "(;")
	if start == -1 {
		return props
	}
	start += 2

	// Root node ends at the next ";" or ")" outside a value
	end := len(content)
	for i := start; i < len(content); i++ {
		if content[i] == '[' {
			i = skipValue(content, i)
			continue
		}
		if content[i] == ';' || content[i] == ')' {
			end = i
			break
		}
	}

	extractProps(content[start:end], props)
	return props
}

// skipValue returns the index of the ']' closing the value opened at i.
func skipValue(s string, i int) int {
	i++
	for i < len(s) && s[i] != ']' {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		i++
	}
	return i
}

// extractProps parses KEY[value] pairs from a node string into the map.
func extractProps(node string, props map[string]string) {
	i := 0
	for i < len(node) {
		// Skip whitespace
		for i < len(node) && (node[i] == ' ' || node[i] == '\n' || node[i] == '\r' || node[i] == '\t') {
			i++
		}
		if i >= len(node) {
			break
		}

		// Read property identifier (uppercase letters)
		keyStart := i
		for i < len(node) && node[i] >= 'A' && node[i] <= 'Z' {
			i++
		}
		if i == keyStart {
			i++
			continue
		}
		key := node[keyStart:i]

		// Read all property values (e.g., AB[aa][bb][cc])
		for i < len(node) && node[i] == '[' {
			end := skipValue(node, i)
			props[key] = unescapeText(node[i+1 : end]) // last value wins for simple props
			i = end
			if i < len(node) {
				i++ // skip ']'
			}
		}
	}
}

func unescapeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// countMoves counts the move nodes (;B[...] or ;W[...]) in the SGF, passes
// included.
func countMoves(content string) int {
	count := 0
	for i := 0; i+2 < len(content); i++ {
		if content[i] == ';' && (content[i+1] == 'B' || content[i+1] == 'W') && content[i+2] == '[' {
			count++
		}
	}
	return count
}

// parseNodes returns all node strings after the root node.
func parseNodes(content string) []string {
	var nodes []string

	start := strings.Index(content, "(;")
	if start == -1 {
		return nodes
	}

	// Skip root node to find subsequent ";"
	i := start + 2
	for i < len(content) && content[i] != ';' {
		if content[i] == '[' {
			i = skipValue(content, i)
		}
		i++
	}

	for i < len(content) {
		if content[i] != ';' {
			i++
			continue
		}
		nodeStart := i
		i++
		// Read until next ';' or ')'
		for i < len(content) && content[i] != ';' && content[i] != ')' {
			if content[i] == '[' {
				i = skipValue(content, i)
			}
			i++
		}
		nodes = append(nodes, content[nodeStart:i])
	}

	return nodes
}

// parseCoord converts an SGF letter pair (column first) to a position.
func parseCoord(s string) (engine.Position, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'z' || s[1] < 'a' || s[1] > 'z' {
		return engine.Position{}, false
	}
	return engine.Position{Row: int(s[1] - 'a'), Col: int(s[0] - 'a')}, true
}

// parseMoveNode extracts a move from a node like ";B[dc]". An empty value is
// a pass.
func parseMoveNode(node string) (Move, bool) {
	node = strings.TrimSpace(node)
	if len(node) < 2 || node[0] != ';' {
		return Move{}, false
	}

	var m Move
	switch node[1] {
	case 'B':
		m.Disc = engine.Black
	case 'W':
		m.Disc = engine.White
	default:
		return Move{}, false
	}

	bracketStart := strings.Index(node, "[")
	bracketEnd := strings.Index(node, "]")
	if bracketStart != 2 || bracketEnd == -1 || bracketEnd <= bracketStart {
		return Move{}, false
	}

	coord := node[bracketStart+1 : bracketEnd]
	if coord == "" {
		m.Pass = true
		return m, true
	}
	p, ok := parseCoord(coord)
	if !ok {
		return Move{}, false
	}
	m.Pos = p
	return m, true
}

// parseSetup collects the AB[]/AW[] positions of a record.
func parseSetup(content string) (blacks, whites []engine.Position) {
	i := strings.Index(content, "(;")
	if i == -1 {
		return nil, nil
	}

	for i < len(content) {
		if content[i] == '[' {
			// values of other properties, e.g. a player named "AB"
			i = skipValue(content, i) + 1
			continue
		}
		if content[i] != 'A' || i+2 >= len(content) || (content[i+1] != 'B' && content[i+1] != 'W') || content[i+2] != '[' {
			i++
			continue
		}
		isBlack := content[i+1] == 'B'
		i += 2

		for i < len(content) && content[i] == '[' {
			end := skipValue(content, i)
			if p, ok := parseCoord(content[i+1 : min(end, len(content))]); ok {
				if isBlack {
					blacks = append(blacks, p)
				} else {
					whites = append(whites, p)
				}
			}
			i = end + 1
		}
	}

	return blacks, whites
}

// ListGames scans a directory for .sgf files and returns their parsed headers,
// sorted newest-first (by filename, which contains timestamps).
func ListGames(dir string) ([]GameInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history dir: %w", err)
	}

	var games []GameInfo
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sgf") {
			continue
		}
		info, err := ParseHeader(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		games = append(games, *info)
	}

	return games, nil
}
