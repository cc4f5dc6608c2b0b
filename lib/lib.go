// Package lib provides spam detection for library users. The primary type is the Detector,
// a thin layer over shield.Engine speaking the wire types of spamcheck package.
//
// The Detector is thread-safe and supports concurrent usage, training can run along with checks.
//
// On creation the Detector loads the saved model from Config.DataDir, or trains a new one from
// "<platform>_spam.csv" files (columns "text" and "text_type" or "label") found there. If no model
// can be loaded or trained, the Detector still answers with a keyword rule, such responses are
// marked with Fallback flag.
//
// Config provides the following options:
//
//   - Config.DataDir is a directory with corpus files and the saved model.
//
//   - Config.Corpus replaces corpus files with another source, e.g. shield.StaticSource
//     or shield.MultiSource combining files and stored samples.
//
//   - Config.Synthetic allows training on a tiny built-in set if no corpus found.
//
//   - Config.Sentiment and Config.Grammar set feature scorers, lexicon sentiment and no grammar
//     check are used by default. See shield/lua and shield/llm packages for scripted and llm scorers.
//     Config.ScorerTimeout limits a single scorer call, 2s by default, llm scorers may need more.
//
//   - Config.CacheSize enables cache of recent predictions.
//
//   - Config.HistorySize defines how many recent detections kept in memory, 100 if not set.
package lib
