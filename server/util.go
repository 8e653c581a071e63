package server

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type logTopic string

const (
	DError logTopic = "ERROR" // level = 3
	DWarn  logTopic = "WARN"  // level = 2
	DInfo  logTopic = "INFO"  // level = 1
	DDebug logTopic = "DEBUG" // level = 0

	// level 1 topics
	DRequest logTopic = "REQUEST"
	DStore   logTopic = "STORE"
)

var topicLevels = map[logTopic]int{
	DError: 3,
	DWarn:  2,
	DInfo:  1,
	DDebug: 0,
}

func getTopicLevel(topic logTopic) int {
	if level, ok := topicLevels[topic]; ok {
		return level
	}
	return 1
}

// logFilter decides which SysLog lines get printed. VERBOSE sets the
// lowest level shown (silent by default); VERBOSE_TOPICS, a comma
// separated list such as "REQUEST,STORE", narrows it to those topics.
// ERROR lines ignore the topic list.
type logFilter struct {
	level  int
	topics map[logTopic]bool
}

func parseLogFilter(verbose, topics string) (logFilter, error) {
	f := logFilter{level: getTopicLevel(DError) + 1}
	if verbose != "" {
		level, err := strconv.Atoi(verbose)
		if err != nil {
			return logFilter{}, fmt.Errorf("invalid verbosity %q: %w", verbose, err)
		}
		f.level = level
	}
	for _, t := range strings.Split(topics, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if f.topics == nil {
			f.topics = make(map[logTopic]bool)
		}
		f.topics[logTopic(t)] = true
	}
	return f, nil
}

func (f logFilter) enabled(topic logTopic) bool {
	if getTopicLevel(topic) < f.level {
		return false
	}
	return f.topics == nil || topic == DError || f.topics[topic]
}

var logStart time.Time
var filter logFilter

func init() {
	var err error
	filter, err = parseLogFilter(os.Getenv("VERBOSE"), os.Getenv("VERBOSE_TOPICS"))
	if err != nil {
		log.Fatalf("Logging: %v", err)
	}
	logStart = time.Now()
}

func SysLog(requestId string, topic logTopic, format string, a ...interface{}) {
	if filter.enabled(topic) {
		curTime := time.Since(logStart).Microseconds() / 100
		prefix := fmt.Sprintf("%06d %-7v R%v ", curTime, string(topic), requestId)
		format = prefix + format
		log.Printf(format, a...)
	}
}
