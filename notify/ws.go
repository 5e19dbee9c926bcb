package notify

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/apigatewaymanagementapi"
	"github.com/aws/aws-sdk-go/service/apigatewaymanagementapi/apigatewaymanagementapiiface"
	"github.com/pkg/errors"
)

// APIGWNotifier posts messages to API Gateway websocket connections
type APIGWNotifier struct {
	c apigatewaymanagementapiiface.ApiGatewayManagementApiAPI
}

// NewAPIGWNotifier builds a notifier for the management endpoint of a websocket API,
// e.g. https://abc123.execute-api.eu-west-1.amazonaws.com/prod
func NewAPIGWNotifier(endpoint string, sess *session.Session) *APIGWNotifier {
	return &APIGWNotifier{
		c: apigatewaymanagementapi.New(sess, aws.NewConfig().WithEndpoint(endpoint)),
	}
}

// Send sends a message via API Gateway to the identified connection
func (n *APIGWNotifier) Send(destination string, body []byte) error {
	input := &apigatewaymanagementapi.PostToConnectionInput{
		ConnectionId: aws.String(destination),
		Data:         body,
	}

	_, err := n.c.PostToConnection(input)
	if err != nil {
		return errors.Wrapf(err, "post to connection %s failed", destination)
	}
	return nil
}
