package events

import (
	"context"
	"encoding/json"
	"fmt"

	"fieldservice_quotes/internal/domain/entities"
	"fieldservice_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQSAPI is the part of the SQS client the publisher needs.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

var _ SQSAPI = (*sqs.Client)(nil)

// SQSPublisher sends quote events as JSON messages to a single queue. The
// event type and quote id travel as message attributes so consumers can
// filter without decoding the body.
type SQSPublisher struct {
	client   SQSAPI
	queueURL string
}

var _ interfaces.IQuoteEventPublisher = (*SQSPublisher)(nil)

func NewSQSPublisher(client SQSAPI, queueURL string) *SQSPublisher {
	return &SQSPublisher{client: client, queueURL: queueURL}
}

func (p *SQSPublisher) Publish(ctx context.Context, event entities.QuoteEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal quote event: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"event_type": {DataType: aws.String("String"), StringValue: aws.String(string(event.Type))},
			"quote_id":   {DataType: aws.String("String"), StringValue: aws.String(event.QuoteID)},
		},
	})
	if err != nil {
		return fmt.Errorf("send quote event: %w", err)
	}
	return nil
}
