package preferences

import (
	"api/database"
	"api/schemas"
	"api/utils"
	"context"
	"os"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore persiste um documento de preferências por usuário, com
// upsert por user_id.
type MongoStore struct{}

func NewMongoStore() *MongoStore {
	return &MongoStore{}
}

func (m *MongoStore) Load(ctx context.Context, userID bson.ObjectID) (schemas.UIPreferences, bool, error) {
	mongoURI := os.Getenv(utils.MONGODB_URI)
	opts := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(opts)
	if err != nil {
		return schemas.UIPreferences{}, false, err
	}
	defer mongoClient.Disconnect(ctx)

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_UI_PREFERENCES)

	prefs := schemas.UIPreferences{}
	err = collection.FindOne(ctx, bson.D{{Key: "user_id", Value: userID}}).Decode(&prefs)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return schemas.UIPreferences{}, false, nil
		}
		return schemas.UIPreferences{}, false, err
	}

	return prefs, true, nil
}

func (m *MongoStore) Save(ctx context.Context, prefs schemas.UIPreferences) error {
	mongoURI := os.Getenv(utils.MONGODB_URI)
	opts := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(opts)
	if err != nil {
		return err
	}
	defer mongoClient.Disconnect(ctx)

	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_UI_PREFERENCES)

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "theme", Value: prefs.Theme},
		{Key: "period_filter", Value: prefs.PeriodFilter},
		{Key: "custom_range", Value: prefs.CustomRange},
		{Key: "search_query", Value: prefs.SearchQuery},
		{Key: "sidebar_collapsed", Value: prefs.SidebarCollapsed},
		{Key: "kanban_columns", Value: prefs.KanbanColumns},
		{Key: "updated_at", Value: prefs.UpdatedAt},
	}}}

	updateOptions := options.UpdateOne().SetUpsert(true)
	_, err = collection.UpdateOne(ctx, bson.D{{Key: "user_id", Value: prefs.UserID}}, update, updateOptions)
	return err
}
