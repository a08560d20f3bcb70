package view

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dakotalabs/glstream/internal/ledger"
)

// How many recent records the table retains.
const tableDepth = 50

// Stream frames can be large: the snapshot frame carries the whole
// historical batch on one line.
const maxFrameBytes = 16 << 20

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statStyle   = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type snapshotMsg struct {
	count int
	tail  []ledger.Record
}

type recordMsg struct {
	record ledger.Record
}

type streamClosedMsg struct {
	err error
}

// frame mirrors the wire framing of the streaming endpoint.
type frame struct {
	Type  string          `json:"type"`
	Count int             `json:"count"`
	Data  json.RawMessage `json:"data"`
}

// StreamModel tails the GL stream endpoint and shows the most recent
// records with running counters.
type StreamModel struct {
	url    string
	frames chan tea.Msg

	table     table.Model
	connected bool
	snapshot  int
	live      int
	err       error
}

func NewStreamModel(baseURL string) StreamModel {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Date", Width: 12},
		{Title: "Account", Width: 34},
		{Title: "Debit", Width: 12},
		{Title: "Credit", Width: 12},
		{Title: "Well", Width: 11},
		{Title: "Source", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(tableDepth/2),
	)

	return StreamModel{
		url:    baseURL + "/get-gl",
		frames: make(chan tea.Msg, 64),
		table:  t,
	}
}

func (m StreamModel) Init() tea.Cmd {
	return tea.Batch(m.connect, m.nextFrame)
}

// connect opens the stream and pumps decoded frames into the channel until
// the connection drops.
func (m StreamModel) connect() tea.Msg {
	resp, err := http.Get(m.url)
	if err != nil {
		return streamClosedMsg{err: fmt.Errorf("connecting to %s: %w", m.url, err)}
	}

	go func() {
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 64*1024), maxFrameBytes)

		for scanner.Scan() {
			var f frame
			if err := json.Unmarshal(scanner.Bytes(), &f); err != nil {
				m.frames <- streamClosedMsg{err: fmt.Errorf("decoding frame: %w", err)}
				return
			}

			switch f.Type {
			case "buffered_records":
				var records []ledger.Record
				if err := json.Unmarshal(f.Data, &records); err != nil {
					m.frames <- streamClosedMsg{err: err}
					return
				}

				tail := records
				if len(tail) > tableDepth {
					tail = tail[len(tail)-tableDepth:]
				}

				m.frames <- snapshotMsg{count: f.Count, tail: tail}
			case "new_record":
				var record ledger.Record
				if err := json.Unmarshal(f.Data, &record); err != nil {
					m.frames <- streamClosedMsg{err: err}
					return
				}

				m.frames <- recordMsg{record: record}
			}
		}

		m.frames <- streamClosedMsg{err: scanner.Err()}
	}()

	return nil
}

// nextFrame hands the next pumped frame to the update loop.
func (m StreamModel) nextFrame() tea.Msg {
	return <-m.frames
}

func (m StreamModel) Update(msg tea.Msg) (StreamModel, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.connected = true
		m.snapshot = msg.count

		rows := make([]table.Row, 0, len(msg.tail))
		for _, rec := range msg.tail {
			rows = append(rows, recordRow(rec))
		}

		m.table.SetRows(rows)
		m.table.GotoBottom()

		return m, m.nextFrame

	case recordMsg:
		m.live++

		rows := append(m.table.Rows(), recordRow(msg.record))
		if len(rows) > tableDepth {
			rows = rows[len(rows)-tableDepth:]
		}

		m.table.SetRows(rows)
		m.table.GotoBottom()

		return m, m.nextFrame

	case streamClosedMsg:
		m.connected = false
		m.err = msg.err

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width - 2)
		m.table.SetHeight(msg.Height - 6)

		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m StreamModel) View() string {
	status := "connecting..."
	if m.connected {
		status = fmt.Sprintf("snapshot %d records | live %d | total %d", m.snapshot, m.live, m.snapshot+m.live)
	}

	header := headerStyle.Render("GL Stream Monitor") + "  " + statStyle.Render(status)

	body := m.table.View()
	if m.err != nil {
		body = errStyle.Render(fmt.Sprintf("stream closed: %v", m.err))
	}

	help := statStyle.Render("q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", help)
}

func recordRow(rec ledger.Record) table.Row {
	return table.Row{
		fmt.Sprintf("%d", rec.EntryID),
		rec.TransactionDate.Format("2006-01-02"),
		fmt.Sprintf("%s %s", rec.AccountCode, rec.AccountName),
		fmt.Sprintf("%.2f", rec.DebitAmount),
		fmt.Sprintf("%.2f", rec.CreditAmount),
		rec.WellID,
		rec.JournalSource,
	}
}
