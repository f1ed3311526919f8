package chat

import (
	"api/database"
	"api/entities/leads"
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CreateMessageRequest struct {
	LeadID  string `json:"lead_id"`
	Content string `json:"content"`
}

// SendMessage valida o conteúdo, dispara o webhook externo em melhor
// esforço e grava a mensagem como outbound. Não há eco otimista: quem
// está com o chat aberto recebe a mensagem pela volta do feed de
// mudanças.
func SendMessage(ctx context.Context, leadID bson.ObjectID, content string, senderName string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyMessage
	}

	ctx, cancel := context.WithTimeout(ctx, database.MONGO_TIMEOUT)
	defer cancel()

	mongoURI := os.Getenv(utils.MONGODB_URI)
	opts := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(opts)
	if err != nil {
		return err
	}
	defer mongoClient.Disconnect(ctx)

	leadCollection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_LEADS)

	lead := &schemas.Lead{}
	err = leadCollection.FindOne(ctx, bson.D{{Key: "_id", Value: leadID}}).Decode(lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return leads.ErrLeadNotFound
		}
		return err
	}

	if lead.ContactPhone != "" {
		go sendToChatWebhook(lead.ContactPhone, content)
	}

	now := time.Now()
	message := &schemas.ChatMessage{
		LeadID:        leadID,
		Content:       content,
		Direction:     schemas.MESSAGE_DIRECTION_OUTBOUND,
		DirectionCode: schemas.DirectionCode(schemas.MESSAGE_DIRECTION_OUTBOUND),
		SenderName:    senderName,
		SentAt:        now,
	}

	messageCollection := mongoClient.Database(database.GetDB()).Collection(database.COLLECTION_MESSAGE_HISTORY)
	if _, err := messageCollection.InsertOne(ctx, message); err != nil {
		return err
	}

	_, _ = leadCollection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: leadID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "last_message_at", Value: now},
			{Key: "updated_at", Value: now},
		}}})

	middlewares.RecordChatMessageSent()

	// A ordenação das listagens depende de last_message_at, então o feed
	// de leads também é notificado.
	PublishChange(ctx, leadID.Hex())
	leads.PublishChange(ctx)

	return nil
}

func CreateOneMessage(w http.ResponseWriter, r *http.Request) {
	reqBody := CreateMessageRequest{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.CHAT_INVALID_REQUEST_DATA)
		return
	}

	leadID, err := bson.ObjectIDFromHex(reqBody.LeadID)
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_LEAD_ID_FORMAT)
		return
	}

	senderName := ""
	if user, ok := middlewares.GetAuthUser(r); ok {
		senderName = user.Name
	}

	err = SendMessage(r.Context(), leadID, reqBody.Content, senderName)
	switch {
	case err == nil:
		utils.SendResponse(w, http.StatusCreated, "", nil, 0)
	case errors.Is(err, ErrEmptyMessage):
		utils.SendResponse(w, http.StatusBadRequest, "Campo 'content' é obrigatório", nil, 0)
	case errors.Is(err, leads.ErrLeadNotFound):
		utils.SendResponse(w, http.StatusNotFound, "Lead não encontrado", nil, 0)
	default:
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_INSERT_MESSAGE_TO_MONGODB)
	}
}
