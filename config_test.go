package objstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvConfig(t *testing.T) {
	env := []string{
		"COS_ENDPOINT=https://a.example",
		"TENCENTCLOUD_SECRET_ID=id",
		"TENCENTCLOUD_ENDPOINT=https://b.example",
		"AWS_REGION=us-west-2",
		"COS_=empty-name",
		"MALFORMED",
		"COS_TOKEN=a=b",
	}

	cfg := envConfig(env, cosEnvPrefixes...)
	assert.Equal(t, map[string]string{
		"endpoint":  "https://b.example", // later entry wins
		"secret_id": "id",
		"token":     "a=b",
	}, cfg)
}

func TestApplyOptions(t *testing.T) {
	cfg := map[string]string{"region": "env"}
	applyOptions(cfg, StorageOptions{
		"region":     "plain",
		"aws_region": "prefixed",
		"unknown":    "x",
	}, s3OptionKeys)

	assert.Equal(t, map[string]string{"region": "prefixed"}, cfg)
}

func TestMapEnv(t *testing.T) {
	env := MapEnv(map[string]string{"B": "2", "A": "1", "C": "x=y"})
	assert.Equal(t, []string{"A=1", "B=2", "C=x=y"}, env())

	// Snapshot is stable and not shared
	first := env()
	first[0] = "mutated"
	assert.Equal(t, "A=1", env()[0])

	assert.Empty(t, MapEnv(nil)())
}
