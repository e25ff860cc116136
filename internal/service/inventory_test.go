package service_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/models"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/service"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/testhelpers"
	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grams(v float64) *float64 { return &v }

func TestAddItemDefaults(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewInventoryService(db)
	user := testhelpers.CreateUser(t, db, 75, models.GoalMuscleGain)
	rice := testhelpers.CreateProduct(t, db, "Rice", 130, 2.7, 0.3, 28)

	item, err := svc.AddItem(context.Background(), user.ID, types.AddInventoryItem{ProductID: rice.ID})
	require.NoError(t, err)

	assert.Equal(t, models.LocationFridge, item.Location)
	require.NotNil(t, item.QuantityGrams)
	assert.Equal(t, float64(service.DefaultQuantityGrams), *item.QuantityGrams)
	assert.Nil(t, item.QuantityUnits)
	require.NotNil(t, item.Product)
	assert.Equal(t, "Rice", item.Product.Name)
}

func TestAddItemUnitsOnlyKeepsGramsEmpty(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewInventoryService(db)
	user := testhelpers.CreateUser(t, db, 75, models.GoalMuscleGain)
	eggs := testhelpers.CreateProduct(t, db, "Eggs", 155, 13, 11, 1.1)

	item, err := svc.AddItem(context.Background(), user.ID, types.AddInventoryItem{
		ProductID:     eggs.ID,
		QuantityUnits: grams(10),
		Location:      models.LocationPantry,
	})
	require.NoError(t, err)
	assert.Nil(t, item.QuantityGrams)
	assert.Equal(t, 10.0, *item.QuantityUnits)
	assert.Equal(t, models.LocationPantry, item.Location)
}

func TestAddItemClampsNegativeQuantities(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewInventoryService(db)
	user := testhelpers.CreateUser(t, db, 75, models.GoalMuscleGain)
	rice := testhelpers.CreateProduct(t, db, "Rice", 130, 2.7, 0.3, 28)

	item, err := svc.AddItem(context.Background(), user.ID, types.AddInventoryItem{
		ProductID:     rice.ID,
		QuantityGrams: grams(-20),
		QuantityUnits: grams(-1),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, *item.QuantityGrams)
	assert.Equal(t, 0.0, *item.QuantityUnits)
}

func TestAddItemValidation(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewInventoryService(db)
	user := testhelpers.CreateUser(t, db, 75, models.GoalMuscleGain)
	rice := testhelpers.CreateProduct(t, db, "Rice", 130, 2.7, 0.3, 28)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, user.ID, types.AddInventoryItem{ProductID: rice.ID, Location: "garage"})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.AddItem(ctx, user.ID, types.AddInventoryItem{ProductID: uuid.New()})
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.AddItem(ctx, user.ID, types.AddInventoryItem{ProductID: rice.ID, QuantityGrams: grams(math.Inf(1))})
	assert.ErrorIs(t, err, service.ErrValidation)
	_, err = svc.AddItem(ctx, user.ID, types.AddInventoryItem{ProductID: rice.ID, QuantityUnits: grams(math.Inf(-1))})
	assert.ErrorIs(t, err, service.ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.InventoryItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddItemTwiceCreatesTwoRows(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewInventoryService(db)
	user := testhelpers.CreateUser(t, db, 75, models.GoalMuscleGain)
	chicken := testhelpers.CreateProduct(t, db, "Chicken breast", 165, 31, 3.6, 0)
	ctx := context.Background()

	req := types.AddInventoryItem{ProductID: chicken.ID, QuantityGrams: grams(300), Location: models.LocationFridge}
	first, err := svc.AddItem(ctx, user.ID, req)
	require.NoError(t, err)
	second, err := svc.AddItem(ctx, user.ID, req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	inv, err := svc.ListInventory(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, inv.Fridge, 2)
}

func TestUpdateItemQuantity(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewInventoryService(db)
	user := testhelpers.CreateUser(t, db, 75, models.GoalMuscleGain)
	rice := testhelpers.CreateProduct(t, db, "Rice", 130, 2.7, 0.3, 28)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, user.ID, types.AddInventoryItem{ProductID: rice.ID, QuantityGrams: grams(300)})
	require.NoError(t, err)

	updated, err := svc.UpdateItemQuantity(ctx, user.ID, item.ID, 120)
	require.NoError(t, err)
	assert.Equal(t, 120.0, *updated.QuantityGrams)

	updated, err = svc.UpdateItemQuantity(ctx, user.ID, item.ID, -50)
	require.NoError(t, err)
	assert.Equal(t, 0.0, *updated.QuantityGrams)
}

func TestUpdateItemOfAnotherUser(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewInventoryService(db)
	owner := testhelpers.CreateUser(t, db, 75, models.GoalMuscleGain)
	intruder := testhelpers.CreateUser(t, db, 60, models.GoalWeightLoss)
	rice := testhelpers.CreateProduct(t, db, "Rice", 130, 2.7, 0.3, 28)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, owner.ID, types.AddInventoryItem{ProductID: rice.ID, QuantityGrams: grams(300)})
	require.NoError(t, err)

	_, err = svc.UpdateItemQuantity(ctx, intruder.ID, item.ID, 1)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteItem(ctx, intruder.ID, item.ID), service.ErrNotFound)

	inv, err := svc.ListInventory(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, inv.Fridge, 1)
	assert.Equal(t, 300.0, *inv.Fridge[0].QuantityGrams)
}

func TestDeleteItem(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewInventoryService(db)
	user := testhelpers.CreateUser(t, db, 75, models.GoalMuscleGain)
	rice := testhelpers.CreateProduct(t, db, "Rice", 130, 2.7, 0.3, 28)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, user.ID, types.AddInventoryItem{ProductID: rice.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, user.ID, item.ID))
	assert.ErrorIs(t, svc.DeleteItem(ctx, user.ID, item.ID), service.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.InventoryItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListInventoryPartitionsByLocation(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewInventoryService(db)
	user := testhelpers.CreateUser(t, db, 75, models.GoalMuscleGain)
	peas := testhelpers.CreateProduct(t, db, "Green peas", 81, 5.4, 0.4, 14)
	oats := testhelpers.CreateProduct(t, db, "Oats", 389, 17, 7, 66)
	ctx := context.Background()

	empty, err := svc.ListInventory(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty.Fridge)
	assert.NotNil(t, empty.Freezer)
	assert.NotNil(t, empty.Pantry)
	assert.NotNil(t, empty.Other)

	_, err = svc.AddItem(ctx, user.ID, types.AddInventoryItem{ProductID: peas.ID, Location: models.LocationFreezer})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, user.ID, types.AddInventoryItem{ProductID: oats.ID, Location: models.LocationPantry})
	require.NoError(t, err)

	inv, err := svc.ListInventory(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, inv.Fridge)
	require.Len(t, inv.Freezer, 1)
	assert.Equal(t, "Green peas", inv.Freezer[0].Product.Name)
	require.Len(t, inv.Pantry, 1)
	assert.Equal(t, "Oats", inv.Pantry[0].Product.Name)
	assert.Empty(t, inv.Other)
}

func TestSnapshot(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewInventoryService(db)
	user := testhelpers.CreateUser(t, db, 75, models.GoalMuscleGain)
	chicken := testhelpers.CreateProduct(t, db, "Chicken breast", 165, 31, 3.6, 0)
	expiry := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, user.ID, types.AddInventoryItem{
		ProductID:     chicken.ID,
		QuantityGrams: grams(300),
		ExpiryDate:    &expiry,
	})
	require.NoError(t, err)

	snapshot, err := svc.Snapshot(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, item.ID, snapshot[0].ItemID)
	assert.Equal(t, chicken.ID, snapshot[0].ProductID)
	assert.Equal(t, "Chicken breast", snapshot[0].ProductName)
	assert.Equal(t, 300.0, *snapshot[0].QuantityGrams)
	assert.Equal(t, models.LocationFridge, snapshot[0].Location)
	require.NotNil(t, snapshot[0].ExpiryDate)
	assert.Equal(t, "2026-10-20", snapshot[0].ExpiryDate.Format("2006-01-02"))
}
