// Package cleanup provides the background expiry sweep worker
package cleanup

import (
	"fmt"
	"strings"
	"time"

	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/interfaces"
)

const (
	cyan       = "\033[38;2;86;182;194m"  // One Dark Cyan: #56B6C2
	cyanBright = "\033[38;2;97;228;240m"  // Brighter Cyan: #61E4F0
	dimCyan    = "\033[38;2;47;91;102m"   // Dim Cyan: #2F5B66
	grey       = "\033[38;2;110;118;129m" // Brighter Grey: #6E7681
	dimGrey    = "\033[38;2;75;82;99m"    // Darker Grey: #4B5263
	success    = "\033[38;2;62;130;144m"  // Dim Cyan: #3E8290
	errorRed   = "\033[38;2;224;108;117m" // One Dark Red: #E06C75
	white      = "\033[38;2;171;178;191m" // One Dark Foreground: #ABB2BF
	purple     = "\033[38;2;198;120;221m" // One Dark Purple: #C678DD
	dimPurple  = "\033[38;2;142;87;158m"  // Dim Purple: #8E579E
	reset      = "\033[0m"
	bold       = "\033[1m"
)

type Reporter struct {
	cache interfaces.Cache
}

func NewReporter(cache interfaces.Cache) *Reporter {
	return &Reporter{cache: cache}
}

func (r *Reporter) LogStage(message string, args ...any) {
	formattedMsg := fmt.Sprintf(message, args...)
	fmt.Printf("%s%s✦ %s%s%s\n", success, bold, grey, formattedMsg, reset)
}

func (r *Reporter) LogSuccess(message string, args ...any) {
	formattedMsg := fmt.Sprintf(message, args...)
	fmt.Printf("%s%s✦ %s%s%s\n", success, bold, white, formattedMsg, reset)
}

func (r *Reporter) LogError(message string, err error) {
	fmt.Printf("%s%s✖ ERROR: %s%s: %v%s\n", bold, errorRed, grey, message, err, reset)
}

func (r *Reporter) LogInfo(message string, args ...any) {
	formattedMsg := fmt.Sprintf(message, args...)
	fmt.Printf("%s▶ %s%s%s\n", dimGrey, grey, formattedMsg, reset)
}

// GenerateEngineReport renders a one-shot summary of live engine state.
func (r *Reporter) GenerateEngineReport() string {
	var report strings.Builder
	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 MST")
	stats := r.cache.Stats()

	report.WriteString(fmt.Sprintf("%s%s▓ %s | Statecraft engine%s\n", bold, dimCyan, timestamp, reset))

	formatItem := func(label string, count int64) string {
		if count > 0 {
			return fmt.Sprintf(" %s%s:%s%d", dimPurple, label, white, count)
		}
		return fmt.Sprintf(" %s%s:%s--", dimGrey, label, dimGrey)
	}

	var stateLine strings.Builder
	stateLine.WriteString(fmt.Sprintf("%s✦ state:%s", purple, reset))
	stateLine.WriteString(formatItem("sessions", int64(stats.Sessions)))
	stateLine.WriteString(formatItem("carts", int64(stats.Carts)))
	stateLine.WriteString(formatItem("requests", stats.Counter))
	report.WriteString(stateLine.String() + "\n")

	var catalogLine strings.Builder
	catalogLine.WriteString(fmt.Sprintf("%s✦ catalog:%s", cyanBright, reset))
	catalogLine.WriteString(fmt.Sprintf(" %susers:%s%d %sproducts:%s%d", dimCyan, cyan, stats.Users, dimCyan, cyan, stats.Products))
	report.WriteString(catalogLine.String() + "\n")

	return report.String()
}
