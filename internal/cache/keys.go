package cache

import "strings"

// GlobalKeyPrefix namespaces every key the quiz writes to Redis.
const GlobalKeyPrefix = "quizconsole"

// GenerateCacheKey builds "quizconsole:<service>:<object>:<id>". Extra
// params are joined by "_" and added as a last segment, e.g. a section and
// theme pair.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	segments := []string{GlobalKeyPrefix, serviceName, objectType, identifier}
	if len(paramsKey) > 0 {
		segments = append(segments, strings.Join(paramsKey, "_"))
	}
	return strings.Join(segments, ":")
}

// HistoryKey is the hash holding the finished quizzes of nickname, one field
// per attempt ULID.
func HistoryKey(nickname string) string {
	return GenerateCacheKey("quiz", "history", nickname)
}
