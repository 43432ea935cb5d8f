package translator

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
)

// SageMakerRuntimeAPI is the part of the SageMaker runtime client used here.
type SageMakerRuntimeAPI interface {
	InvokeEndpoint(ctx context.Context, params *sagemakerruntime.InvokeEndpointInput, optFns ...func(*sagemakerruntime.Options)) (*sagemakerruntime.InvokeEndpointOutput, error)
}

// SageMakerInvoker calls SageMaker real-time inference endpoints.
type SageMakerInvoker struct {
	client SageMakerRuntimeAPI
}

func NewSageMakerInvoker(cfg aws.Config) *SageMakerInvoker {
	return &SageMakerInvoker{client: sagemakerruntime.NewFromConfig(cfg)}
}

func (i *SageMakerInvoker) Invoke(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	out, err := i.client.InvokeEndpoint(ctx, &sagemakerruntime.InvokeEndpointInput{
		EndpointName: aws.String(endpoint),
		Body:         body,
		ContentType:  aws.String(contentTypeJSON),
		Accept:       aws.String(contentTypeJSON),
	})
	if err != nil {
		return nil, invocationError(endpoint, 0, err)
	}
	return out.Body, nil
}
