package queue_test

import (
	"testing"

	"github.com/Adedunmol/questino/queue"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmotionAnalysisPayloadRoundTrip(t *testing.T) {
	payload := &queue.EmotionAnalysisPayload{ResponseID: "r-1", QuestionID: "q-1", Text: "I felt great today"}

	task, err := payload.Process()
	require.NoError(t, err)
	assert.Equal(t, queue.TypeEmotionAnalysis, task.Type())

	decoded, err := queue.DecodeEmotionAnalysis(task)
	require.NoError(t, err)
	assert.Equal(t, *payload, decoded)
}

func TestDecodeEmotionAnalysisRejectsGarbage(t *testing.T) {
	_, err := queue.DecodeEmotionAnalysis(asynq.NewTask(queue.TypeEmotionAnalysis, []byte("{")))
	assert.Error(t, err)
}

func TestRedisOpt(t *testing.T) {
	opt, err := queue.RedisOpt("redis://user:pw@cache:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opt.Addr)
	assert.Equal(t, "pw", opt.Password)
	assert.Equal(t, 2, opt.DB)

	_, err = queue.RedisOpt("")
	assert.Error(t, err)

	_, err = queue.RedisOpt("http://not-redis")
	assert.Error(t, err)
}
