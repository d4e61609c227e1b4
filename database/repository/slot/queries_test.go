package slotRepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"oraculo/config"
)

func TestAvailableFilterNoWindow(t *testing.T) {
	filter := availableFilter(0)
	assert.Equal(t, bson.M{"isBooked": false}, filter)
}

func TestAvailableFilterWindow(t *testing.T) {
	config.AppConfig.ServiceTimezone = "America/Sao_Paulo"

	filter := availableFilter(7)
	assert.Equal(t, false, filter["isBooked"])

	window, ok := filter["date"].(bson.M)
	require.True(t, ok)

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	today := time.Now().In(loc)

	assert.Equal(t, today.Format("2006-01-02"), window["$gte"])
	assert.Equal(t, today.AddDate(0, 0, 7).Format("2006-01-02"), window["$lte"])
}
