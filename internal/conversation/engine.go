package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"dialogsynth/internal/logger"
	"dialogsynth/internal/types"
)

// DefaultMaxRounds caps a conversation when no limit is configured.
const DefaultMaxRounds = 10

const terminationToken = "TERMINATE"

// IsTermination reports whether content ends with the termination token,
// compared case-insensitively. Only the suffix counts.
func IsTermination(content string) bool {
	r := []rune(content)
	if len(r) < len(terminationToken) {
		return false
	}
	return strings.ToUpper(string(r[len(r)-len(terminationToken):])) == terminationToken
}

// NextSpeaker is round-robin: the agent after last, wrapping at n.
func NextSpeaker(last, n int) int {
	return (last + 1) % n
}

type State int

const (
	AwaitingInitial State = iota
	InProgress
	Terminated
	RoundLimitReached
)

func (s State) String() string {
	switch s {
	case AwaitingInitial:
		return "awaiting_initial"
	case InProgress:
		return "in_progress"
	case Terminated:
		return "terminated"
	case RoundLimitReached:
		return "round_limit_reached"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Result is a finished transcript.
type Result struct {
	Turns []types.Turn
	State State
	// Cost sums the replies produced inside the loop.
	Cost float64
}

var ErrTooFewAgents = errors.New("a conversation needs at least two agents")

type Engine struct {
	maxRounds int
	log       *logrus.Entry
}

// NewEngine returns an engine that stops after maxRounds turns, the initial
// message included. A non-positive maxRounds uses DefaultMaxRounds.
func NewEngine(maxRounds int, log *logger.Logger) *Engine {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	return &Engine{maxRounds: maxRounds, log: log.Component("conversation")}
}

// Run plays the conversation. Turn 0 is initial, spoken by agents[0]; turn i
// is spoken by agents[i % len(agents)]. A failed reply aborts the run and no
// transcript is returned.
func (e *Engine) Run(ctx context.Context, agents []Agent, initial string) (*Result, error) {
	if len(agents) < 2 {
		return nil, ErrTooFewAgents
	}

	res := &Result{State: AwaitingInitial}
	res.Turns = append(res.Turns, types.Turn{
		Role:    string(agents[0].Role()),
		Name:    agents[0].Name(),
		Content: initial,
	})
	res.State = InProgress
	if IsTermination(initial) {
		res.State = Terminated
		return res, nil
	}

	last := 0
	for len(res.Turns) < e.maxRounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		last = NextSpeaker(last, len(agents))
		speaker := agents[last]

		reply, err := speaker.Reply(ctx, res.Turns)
		if err != nil {
			e.log.WithError(err).WithField("turn", len(res.Turns)).Error("conversation aborted")
			return nil, err
		}
		res.Turns = append(res.Turns, types.Turn{
			Role:    string(speaker.Role()),
			Name:    speaker.Name(),
			Content: reply.Content,
		})
		res.Cost += reply.Cost
		e.log.WithFields(map[string]interface{}{
			"turn":    len(res.Turns) - 1,
			"speaker": speaker.Name(),
		}).Debug("turn completed")

		if IsTermination(reply.Content) {
			res.State = Terminated
			return res, nil
		}
	}
	res.State = RoundLimitReached
	return res, nil
}
