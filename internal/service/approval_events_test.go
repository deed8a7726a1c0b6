package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestApprovalPublisherBroadcastsOverRedis(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	subscriber := redisClient.Subscribe(ctx, "wu:verify:approvals")
	defer subscriber.Close()
	_, err = subscriber.Receive(ctx)
	require.NoError(t, err)

	publisher := NewApprovalPublisher(redisClient, nil, "wu:verify", testLogger())
	publisher.Publish(ctx, ApprovalEvent{
		CandidateID: 7,
		Email:       "amina@example.com",
		Name:        "Amina Yusuf",
		ApprovedAt:  time.Now().UTC(),
	})

	message, err := subscriber.ReceiveMessage(ctx)
	require.NoError(t, err)

	var event ApprovalEvent
	require.NoError(t, json.Unmarshal([]byte(message.Payload), &event))
	require.Equal(t, uint(7), event.CandidateID)
	require.Equal(t, "amina@example.com", event.Email)
	require.NotEmpty(t, event.Source, "publisher must stamp its node id")
}

func TestApprovalPublisherWithoutBrokersIsNoOp(t *testing.T) {
	publisher := NewApprovalPublisher(nil, nil, "wu:verify", testLogger())
	publisher.Publish(context.Background(), ApprovalEvent{CandidateID: 1})
}
