package errorsWithData

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var errSentinel = errors.New("sentinel")

type retryData struct {
	Attempts int
}

type placeData struct {
	Index int
}

func TestWrappingPreservesIs(t *testing.T) {
	err := NewErrorWithData(errSentinel, "something went wrong", retryData{Attempts: 3})
	require.ErrorIs(t, err, errSentinel)
	require.Equal(t, "something went wrong", err.Error())
	require.Equal(t, retryData{Attempts: 3}, err.GetData())
}

func TestEmptyMessageDefaultsToBase(t *testing.T) {
	err := NewErrorWithData(errSentinel, "", retryData{Attempts: 1})
	require.Equal(t, errSentinel.Error(), err.Error())
}

func TestGetDataFromError(t *testing.T) {
	err := NewErrorWithData(errSentinel, "inner", retryData{Attempts: 5})

	data, ok := GetDataFromError[retryData](err)
	require.True(t, ok)
	require.Equal(t, 5, data.Attempts)

	// A different data type is not found.
	_, ok = GetDataFromError[placeData](err)
	require.False(t, ok)

	_, ok = GetDataFromError[retryData](errSentinel)
	require.False(t, ok)

	_, ok = GetDataFromError[retryData](nil)
	require.False(t, ok)
}

func TestGetDataThroughWrappingLayers(t *testing.T) {
	inner := NewErrorWithData(errSentinel, "inner", retryData{Attempts: 2})
	middle := fmt.Errorf("while doing the thing: %w", inner)
	outer := NewErrorWithData[placeData](middle, "outer", placeData{Index: 7})

	require.ErrorIs(t, outer, errSentinel)

	place, ok := GetDataFromError[placeData](outer)
	require.True(t, ok)
	require.Equal(t, 7, place.Index)

	retry, ok := GetDataFromError[retryData](outer)
	require.True(t, ok)
	require.Equal(t, 2, retry.Attempts)
}

func TestStackedSameTypeReturnsOutermost(t *testing.T) {
	inner := NewErrorWithData(errSentinel, "inner", retryData{Attempts: 1})
	outer := NewErrorWithData[retryData](inner, "outer", retryData{Attempts: 9})

	data, ok := GetDataFromError[retryData](outer)
	require.True(t, ok)
	require.Equal(t, 9, data.Attempts)
}
