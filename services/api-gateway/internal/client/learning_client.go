package client

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/waste3d/courseplatform-api/pkg/learningpb"
)

type LearningClient struct {
	Client learningpb.LearningServiceClient
	conn   *grpc.ClientConn
}

func NewLearningClient(url string) (*LearningClient, error) {
	cc, err := grpc.NewClient(url, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &LearningClient{
		Client: learningpb.NewLearningServiceClient(cc),
		conn:   cc,
	}, nil
}

func (c *LearningClient) Close() error {
	return c.conn.Close()
}
