package chat

import (
	"api/database"
	"api/entities/leads"
	"api/schemas"
	"api/utils"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type InboundWebhookRequest struct {
	Number     string `json:"number"`
	Message    string `json:"message"`
	SenderName string `json:"sender_name"`
}

// CreateOneWebhook recebe mensagens vindas do provedor externo. Grava como
// inbound, atualiza o last_message_at do lead e roda a automação de
// status: lead "Novo" que responde vira "Atendimento".
func CreateOneWebhook(w http.ResponseWriter, r *http.Request) {
	reqBody := InboundWebhookRequest{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.CHAT_INVALID_REQUEST_DATA)
		return
	}

	if reqBody.Number == "" || reqBody.Message == "" {
		utils.SendResponse(w, http.StatusBadRequest, "Campos 'number' e 'message' são obrigatórios", nil, 0)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	mongoURI := os.Getenv(utils.MONGODB_URI)
	opts := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(opts)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}
	defer mongoClient.Disconnect(ctx)

	lead, err := findLeadByPhone(ctx, mongoClient, reqBody.Number)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_LEADS_IN_MONGODB)
		return
	}
	if lead == nil {
		utils.SendResponse(w, http.StatusNotFound, "Nenhum lead com esse telefone", nil, 0)
		return
	}

	now := time.Now()
	message := &schemas.ChatMessage{
		LeadID:        lead.ID,
		Content:       reqBody.Message,
		Direction:     schemas.MESSAGE_DIRECTION_INBOUND,
		DirectionCode: schemas.DirectionCode(schemas.MESSAGE_DIRECTION_INBOUND),
		SenderName:    reqBody.SenderName,
		SentAt:        now,
	}

	messageCollection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_MESSAGE_HISTORY)
	if _, err := messageCollection.InsertOne(ctx, message); err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_INSERT_MESSAGE_TO_MONGODB)
		return
	}

	leadCollection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_LEADS)
	_, _ = leadCollection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: lead.ID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "last_message_at", Value: now},
			{Key: "updated_at", Value: now},
		}}})

	if lead.Status == schemas.LEAD_STATUS_NOVO {
		if err := leads.ApplyStatusChange(ctx, lead.ID, schemas.LEAD_STATUS_ATENDIMENTO, "chat-automation"); err != nil {
			log.Printf("[Chat] Erro na automação de status do lead %s: %v", lead.ID.Hex(), err)
		}
	}

	PublishChange(ctx, lead.ID.Hex())
	leads.PublishChange(ctx)

	utils.SendResponse(w, http.StatusCreated, "", nil, 0)
}

// findLeadByPhone compara telefones já normalizados, porque o provedor
// manda sempre com DDI e o cadastro nem sempre tem.
func findLeadByPhone(ctx context.Context, mongoClient *mongo.Client, phone string) (*schemas.Lead, error) {
	collection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_LEADS)

	filter := bson.D{{Key: "contact_phone", Value: bson.D{{Key: "$exists", Value: true}, {Key: "$ne", Value: ""}}}}
	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	normalized := utils.NormalizePhone(phone)
	for cursor.Next(ctx) {
		lead := &schemas.Lead{}
		if err := cursor.Decode(lead); err != nil {
			continue
		}
		if utils.NormalizePhone(lead.ContactPhone) == normalized {
			return lead, nil
		}
	}

	return nil, cursor.Err()
}
