package corpus

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"dialogsynth/internal/dataset"
	"dialogsynth/internal/logger"
	"dialogsynth/internal/types"
)

var terminateToken = regexp.MustCompile(`TERMINATE`)

// stripTerminate removes TERMINATE wherever it stands alone as a word. Word
// characters are Unicode letters, numbers and underscore.
func stripTerminate(s string) string {
	var sb strings.Builder
	last := 0
	for _, loc := range terminateToken.FindAllStringIndex(s, -1) {
		before, _ := utf8.DecodeLastRuneInString(s[:loc[0]])
		after, _ := utf8.DecodeRuneInString(s[loc[1]:])
		if (loc[0] > 0 && isWordRune(before)) || (loc[1] < len(s) && isWordRune(after)) {
			continue
		}
		sb.WriteString(s[last:loc[0]])
		last = loc[1]
	}
	sb.WriteString(s[last:])
	return sb.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// publishedRole maps raw transcript roles onto the published labels.
var publishedRole = map[string]string{
	"user":                    types.LabelCallCenterAgent,
	string(types.RoleService): types.LabelCallCenterAgent,
	"assistant":               types.LabelCustomer,
}

// CleanupReport counts what a cleanup pass touched.
type CleanupReport struct {
	Files   int
	Updated int
	Skipped int
}

// CleanConversation adds a missing call_id, strips standalone TERMINATE tokens
// and remaps roles. It reports whether anything changed.
func CleanConversation(c Conversation, newID func() string) bool {
	changed := false
	if _, ok := c[keyCallID]; !ok {
		c[keyCallID] = newID()
		changed = true
	}
	for _, msg := range c.Messages() {
		if role, ok := msg["role"].(string); ok {
			if mapped, ok := publishedRole[role]; ok {
				msg["role"] = mapped
				changed = true
			}
		}
		content, ok := msg["content"].(string)
		if !ok {
			continue
		}
		cleaned := strings.TrimSpace(stripTerminate(content))
		if cleaned != content {
			msg["content"] = cleaned
			changed = true
		}
	}
	return changed
}

// Cleanup rewrites every *.json conversation file in dir that needed changes.
// Files that do not hold a list of conversations are skipped.
func Cleanup(dir string, log *logger.Logger) (CleanupReport, error) {
	entry := log.WithField("component", "cleanup").WithField("dir", dir)

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return CleanupReport{}, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(files)

	report := CleanupReport{Files: len(files)}
	newID := func() string { return uuid.New().String() }
	for _, f := range files {
		fe := entry.WithField("file", filepath.Base(f))
		convs, err := readConversations(f)
		if err != nil {
			fe.WithError(err).Warn("skipping file")
			report.Skipped++
			continue
		}

		updated := false
		for _, c := range convs {
			if CleanConversation(c, newID) {
				updated = true
			}
		}
		if !updated {
			fe.Debug("no changes needed")
			continue
		}
		if err := dataset.WriteJSON(f, convs); err != nil {
			fe.WithError(err).Error("error writing updated data")
			continue
		}
		report.Updated++
		fe.Info("updated file")
	}
	return report, nil
}
