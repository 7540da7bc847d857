package erp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/erp-report-api/infrastructure/integrator/erp/erpclient/mocks"
	erpdomain "github.com/vfg2006/erp-report-api/infrastructure/integrator/erp/erpdomain"
	"github.com/vfg2006/erp-report-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestResourceConnector(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	connector := New(client).Resource(erpdomain.ResourceDeliveryNotes)

	client.EXPECT().
		List(gomock.Any(), erpdomain.ResourceDeliveryNotes, "tok").
		Return([]map[string]any{{"id": "1"}, {"id": "2"}}, nil)
	client.EXPECT().
		Get(gomock.Any(), erpdomain.ResourceDeliveryNotes, "2", "tok").
		Return(map[string]any{"id": "2", "items": []any{}}, nil)
	client.EXPECT().
		Get(gomock.Any(), erpdomain.ResourceDeliveryNotes, "3", "tok").
		Return(nil, errors.New("timeout"))

	headers, err := connector.ListHeaders(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, []domain.Record{{"id": "1"}, {"id": "2"}}, headers)

	detail, err := connector.FetchDetail(context.Background(), "tok", "2")
	require.NoError(t, err)
	assert.Equal(t, "2", detail.String("id"))

	_, err = connector.FetchDetail(context.Background(), "tok", "3")
	assert.EqualError(t, err, "timeout")
}

func TestResourceConnector_ErroNaListagem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().List(gomock.Any(), erpdomain.ResourcePayments, "").Return(nil, errors.New("dial tcp"))

	headers, err := New(client).Resource(erpdomain.ResourcePayments).ListHeaders(context.Background(), "")

	assert.Nil(t, headers)
	assert.EqualError(t, err, "dial tcp")
}
